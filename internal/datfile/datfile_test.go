package datfile

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/philipparndt/gohoneycomb/pkg/geometry"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `# carbon honeycomb
x y z
1.0 2.0 3.0

-1.5 0 2.25
`
	points, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	want := []geometry.Vector3{geometry.NewVector3(1, 2, 3), geometry.NewVector3(-1.5, 0, 2.25)}
	if diff := cmp.Diff(want, points.Slice()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestReadIndexedAndPlanar(t *testing.T) {
	indexed, err := Read(strings.NewReader("1 0.5 0.5 1\n2 1.5 0.5 1\n"))
	require.NoError(t, err)
	if indexed.Len() != 2 || indexed.At(1) != geometry.NewVector3(1.5, 0.5, 1) {
		t.Errorf("expected the index column dropped, got %v", indexed.Slice())
	}

	planar, err := Read(strings.NewReader("3 4\n"))
	require.NoError(t, err)
	if planar.At(0) != geometry.NewVector3(3, 4, 0) {
		t.Errorf("expected z = 0, got %v", planar.At(0))
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"not a number": "1 2 3\n1 two 3\n",
		"too many":     "1 2 3 4 5\n",
		"too few":      "1\n",
		"mixed widths": "1 2 3\n1 2 3 4\n",
		"not finite":   "1 2 NaN\n",
		"late header":  "1 2 3\nx y z\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(input)); err == nil {
				t.Errorf("expected an error for %q", input)
			}
		})
	}
}

func TestWriteThenRead(t *testing.T) {
	points := geometry.NewPoints([]geometry.Vector3{
		geometry.NewVector3(0.1234567, -2, 3),
		geometry.NewVector3(4, 5, -6.5),
	})

	for _, indexed := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, points, indexed))
		if indexed && !strings.Contains(buf.String(), "\n2 4.000000 5.000000 -6.500000\n") {
			t.Errorf("expected an indexed row, got:\n%s", buf.String())
		}

		back, err := Read(&buf)
		require.NoError(t, err)
		if diff := cmp.Diff(points.Slice(), back.Slice(), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("indexed=%v: points mismatch (-want +got):\n%s", indexed, diff)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.dat")
	points := geometry.NewPoints([]geometry.Vector3{geometry.NewVector3(1, 2, 3)})
	require.NoError(t, WriteFile(path, points, false))

	back, err := ReadFile(path)
	require.NoError(t, err)
	if back.Len() != 1 || back.At(0) != points.At(0) {
		t.Errorf("expected %v, got %v", points.Slice(), back.Slice())
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.dat")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
