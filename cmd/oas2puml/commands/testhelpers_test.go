package commands

import "testing"

const petstoreFile = "../../../testdata/petstore.yaml"

// clearDiagramEnv isolates tests from OAS2PUML_* variables set by the caller.
func clearDiagramEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OAS2PUML_TYPE", "OAS2PUML_CARDINALITY", "OAS2PUML_SVG", "OAS2PUML_PLANTUML_SERVER"} {
		t.Setenv(key, "")
	}
}
