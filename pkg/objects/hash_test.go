package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeObjectHash_KnownValues(t *testing.T) {
	tests := []struct {
		name    string
		objType ObjectType
		content string
		want    ObjectHash
	}{
		{"empty blob", BlobType, "", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"hello world blob", BlobType, "hello world\n", "3b18e512dba79e4c8300dd08aeb37f8e728b8dad"},
		{"empty tree", TreeType, "", "4b825dc642cb6eb9a060e54bf8d69288fbee4904"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeObjectHash(tt.objType, []byte(tt.content))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeObjectHash_KindIsPartOfIdentity(t *testing.T) {
	content := []byte("same bytes")
	seen := make(map[ObjectHash]ObjectType)

	for _, ot := range AllObjectTypes {
		h := ComputeObjectHash(ot, content)
		if prev, ok := seen[h]; ok {
			t.Fatalf("%s and %s hashed to the same value %s", prev, ot, h)
		}
		seen[h] = ot
	}
}

func TestComputeObjectHash_Deterministic(t *testing.T) {
	a := ComputeObjectHash(CommitType, []byte("tree abc\n"))
	b := ComputeObjectHash(CommitType, []byte("tree abc\n"))
	assert.Equal(t, a, b)
	assert.True(t, a.IsValid())
}

func TestComputeObjectHash_MatchesEnvelopeHash(t *testing.T) {
	content := []byte("payload")
	sum := sha1.Sum(Wrap(TagType, content))
	assert.Equal(t, ObjectHash(hex.EncodeToString(sum[:])), ComputeObjectHash(TagType, content))
}

func TestObjectHash_Validate(t *testing.T) {
	tests := []struct {
		name  string
		hash  ObjectHash
		valid bool
	}{
		{"valid", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", true},
		{"zero", ZeroHash(), true},
		{"too short", "e69de29", false},
		{"non hex", "z69de29bb2d1d6434b8b29ae775ad8c2e48c5391", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hash.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestNewObjectHashFromString_Lowercases(t *testing.T) {
	h, err := NewObjectHashFromString("E69DE29BB2D1D6434B8B29AE775AD8C2E48C5391")
	require.NoError(t, err)
	assert.Equal(t, ObjectHash("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"), h)
}

func TestObjectHash_ShortAndFanOut(t *testing.T) {
	h := ObjectHash("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391")
	assert.Equal(t, ShortHash("e69de29"), h.Short())

	dir, file := h.FanOut()
	assert.Equal(t, "e6", dir)
	assert.Equal(t, "9de29bb2d1d6434b8b29ae775ad8c2e48c5391", file)
	assert.True(t, h.HasPrefix("E69D"))
	assert.True(t, ZeroHash().IsZero())
}

func TestShortHash_IsValid(t *testing.T) {
	assert.True(t, ShortHash("abc").IsValid())
	assert.False(t, ShortHash("").IsValid())
	assert.False(t, ShortHash("xyz").IsValid())
	assert.Equal(t, ShortHash("abcd"), ShortHash(" ABCD ").Normalize())
}

func TestParseObjectType(t *testing.T) {
	for _, ot := range AllObjectTypes {
		got, err := ParseObjectType(ot.String())
		require.NoError(t, err)
		assert.Equal(t, ot, got)
	}

	_, err := ParseObjectType("entity")
	assert.Error(t, err)
}
