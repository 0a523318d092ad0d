package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"@startuml\nBob -> Alice : hello\n@enduml\n",
		"@startuml\nclass Pet {\n  {field} name : String\n}\n@enduml\n",
		strings.Repeat("class A\n", 500),
		"title Café ☃",
	}
	for _, src := range sources {
		encoded, err := Encode([]byte(src))
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, src, string(decoded))
	}
}

func TestEncodeUsesURLSafeAlphabet(t *testing.T) {
	encoded, err := Encode([]byte(strings.Repeat("@startuml\nA -> B : x\n@enduml\n", 20)))
	require.NoError(t, err)
	require.NotEmpty(t, encoded)
	for _, r := range encoded {
		assert.True(t, strings.ContainsRune(plantumlAlphabet, r), "unexpected rune %q", r)
	}
	assert.NotContains(t, encoded, "=")
}

func TestEncodeCompresses(t *testing.T) {
	src := []byte(strings.Repeat("class Pet\n", 1000))
	encoded, err := Encode(src)
	require.NoError(t, err)
	assert.Less(t, len(encoded), len(src)/10)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode("not*valid")
	assert.Error(t, err)
}
