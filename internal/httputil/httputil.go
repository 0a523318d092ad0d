// Package httputil provides HTTP status code and media type helpers.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	// FirstFailureCode is the lowest status code that counts as a failed
	// response. Every lower numeric code is a success.
	FirstFailureCode = 300
	// DefaultResponse is the response key covering every undeclared code.
	DefaultResponse = "default"
)

// Media types returned by a PlantUML server.
const (
	MediaTypeSVG = "image/svg+xml"
	MediaTypePNG = "image/png"
)

// ClassifyResponseCode sorts an operation response key into success (a
// numeric code below 300) or failure ("default", or a numeric code of 300
// and above). Keys that are neither, such as wildcards like "2XX", are
// ignored by both.
func ClassifyResponseCode(code string) (success, failure bool) {
	if strings.EqualFold(code, DefaultResponse) {
		return false, true
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return false, false
	}
	return n < FirstFailureCode, n >= FirstFailureCode
}

// IsSuccessCode reports whether an HTTP status received from a server is 2xx.
func IsSuccessCode(status int) bool {
	return status >= 200 && status < FirstFailureCode
}

// MediaType returns the lower-cased media type of a Content-Type header
// without its parameters, or "" if the header cannot be parsed.
// Example: "image/svg+xml; charset=utf-8" -> "image/svg+xml"
func MediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}
