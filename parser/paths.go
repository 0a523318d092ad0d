package parser

import "iter"

// HTTP methods in the order operations of a path item are visited.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodHead    = "head"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodPatch   = "patch"
	MethodOptions = "options"
)

// PathItem holds the operations available on a single path.
type PathItem struct {
	Get     *Operation
	Put     *Operation
	Head    *Operation
	Post    *Operation
	Delete  *Operation
	Patch   *Operation
	Options *Operation
	// Parameters are shared by every operation on the path. They are kept as
	// declared and are not merged into the operations.
	Parameters []*Parameter
}

// Operations iterates over the defined operations keyed by lower-case HTTP
// method, in the order get, put, head, post, delete, patch, options.
func (p *PathItem) Operations() iter.Seq2[string, *Operation] {
	return func(yield func(string, *Operation) bool) {
		if p == nil {
			return
		}
		ops := []struct {
			method string
			op     *Operation
		}{
			{MethodGet, p.Get},
			{MethodPut, p.Put},
			{MethodHead, p.Head},
			{MethodPost, p.Post},
			{MethodDelete, p.Delete},
			{MethodPatch, p.Patch},
			{MethodOptions, p.Options},
		}
		for _, entry := range ops {
			if entry.op == nil {
				continue
			}
			if !yield(entry.method, entry.op) {
				return
			}
		}
	}
}

// isMethod reports whether key names an operation field of a path item.
func isMethod(key string) bool {
	switch key {
	case MethodGet, MethodPut, MethodHead, MethodPost, MethodDelete, MethodPatch, MethodOptions:
		return true
	}
	return false
}

// setOperation assigns op to the field for method. It reports false for an
// unknown method.
func (p *PathItem) setOperation(method string, op *Operation) bool {
	switch method {
	case MethodGet:
		p.Get = op
	case MethodPut:
		p.Put = op
	case MethodHead:
		p.Head = op
	case MethodPost:
		p.Post = op
	case MethodDelete:
		p.Delete = op
	case MethodPatch:
		p.Patch = op
	case MethodOptions:
		p.Options = op
	default:
		return false
	}
	return true
}
