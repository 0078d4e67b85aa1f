package payload_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fixgen/pkg/payload"
	"github.com/goliatone/go-fixgen/pkg/testsupport"
)

func TestGenerateMatchesGolden(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "accounts.json"))
	orch := payload.New(payload.WithClock(payloadClock), payload.WithIndent("  "))

	raw, err := orch.Generate(testsupport.Context(), payload.Request{
		Document:    &doc,
		OperationID: "createUser",
	})
	require.NoError(t, err)

	goldenPath := filepath.Join("testdata", "createUser.golden.json")
	if testsupport.WriteMaybeGolden(t, goldenPath, raw) {
		return
	}

	want := strings.TrimSpace(testsupport.MustReadGoldenString(t, goldenPath))
	got := strings.TrimSpace(string(raw))
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}
