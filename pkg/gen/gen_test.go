package gen

import (
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsam3x/sam3hal/pkg/board"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

func builtinBoards(t *testing.T) []*board.Board {
	t.Helper()
	var boards []*board.Board
	for _, p := range board.Profiles() {
		b, err := p.Build(resolve.Default())
		require.NoError(t, err)
		boards = append(boards, b)
	}
	return boards
}

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\nOutput:\n%s", substr, output)
	}
}

func TestGenerateBoardFile(t *testing.T) {
	boards := builtinBoards(t)
	due := boards[0]
	require.Equal(t, "arduino-due", due.Name())

	out, err := GenerateBoardFile(due, "boards")
	require.NoError(t, err)
	output := string(out)

	mustContain(t, output, "// Code generated by sam3hal gen. DO NOT EDIT.")
	mustContain(t, output, "//go:build board_arduino_due && sam3x8e && sam3x && sam3_e && rt\n")
	mustContain(t, output, "package boards")
	mustContain(t, output, `const selectedVariant = "sam3x8e"`)
	mustContain(t, output, "Variant:       selectedVariant,")
	mustContain(t, output, `PanicStrategy: "halt",`)
	mustContain(t, output, "RuntimeShim:   true,")
	mustContain(t, output, `"usb",`)
	mustContain(t, output, due.Activation().Fingerprint())
}

func TestGenerateSelectFile(t *testing.T) {
	boards := builtinBoards(t)
	out, err := GenerateSelectFile(boards, "boards")
	require.NoError(t, err)
	output := string(out)

	mustContain(t, output, "//go:build !((board_arduino_due && sam3x8e && sam3x && sam3_e && rt) || (board_sam3x_ek && sam3x8h && sam3x && sam3_e))")
	mustContain(t, output, "Selected = Board{}")
	mustContain(t, output, `const selectedVariant = ""`)

	_, err = GenerateSelectFile(nil, "boards")
	assert.ErrorIs(t, err, ErrNoBoards)
}

// Exactly one gated file compiles for each board's flags and for none.
func TestConstraintsAreExclusive(t *testing.T) {
	boards := builtinBoards(t)
	fallback := FallbackExpr(boards)

	eval := func(expr constraint.Expr, tags []string) bool {
		return expr.Eval(func(tag string) bool {
			for _, t := range tags {
				if t == tag {
					return true
				}
			}
			return false
		})
	}

	for _, b := range boards {
		tags := append([]string{b.Tag()}, b.BuildTags()...)
		assert.False(t, eval(fallback, tags), b.Name())
		for _, other := range boards {
			assert.Equal(t, other == b, eval(BuildExpr(other), tags), "%s with %s tags", other.Name(), b.Name())
		}
	}

	// Board tag without the matching activation tags falls back.
	assert.True(t, eval(fallback, []string{"board_arduino_due", "sam3x8e"}))
	assert.True(t, eval(fallback, nil))
}

func TestGenerateAndWrite(t *testing.T) {
	files, err := Generate(builtinBoards(t), "boards")
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"board.go", "board_arduino_due.go", "board_sam3x_ek.go", "board_none.go"}, names)
	mustContain(t, string(files[0].Content), "var Selected Board")
	mustContain(t, string(files[0].Content), "func HasModule(name string) bool")

	dir := filepath.Join(t.TempDir(), "boards")
	require.NoError(t, WriteFiles(dir, files...))
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Content, data)
	}
}

func TestGenerateDuplicateTag(t *testing.T) {
	a, err := board.Profile{Name: "my-board", Variant: "sam3x8e"}.Build(resolve.Default())
	require.NoError(t, err)
	b, err := board.Profile{Name: "my_board", Variant: "sam3x8c"}.Build(resolve.Default())
	require.NoError(t, err)

	_, err = Generate([]*board.Board{a, b}, "boards")
	assert.Error(t, err)
}

// typeCheck compiles the files whose build constraint holds for tags.
func typeCheck(t *testing.T, files []File, tags ...string) error {
	t.Helper()
	has := func(tag string) bool {
		for _, want := range tags {
			if want == tag {
				return true
			}
		}
		return false
	}

	fset := token.NewFileSet()
	var selected []*ast.File
	for _, f := range files {
		af, err := parser.ParseFile(fset, f.Name, f.Content, parser.ParseComments)
		require.NoError(t, err, f.Name)
		if buildLineHolds(t, string(f.Content), has) {
			selected = append(selected, af)
		}
	}
	_, err := (&types.Config{}).Check("boards", fset, selected, nil)
	return err
}

func buildLineHolds(t *testing.T, src string, has func(string) bool) bool {
	t.Helper()
	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(line, "package ") {
			break
		}
		if constraint.IsGoBuild(line) {
			expr, err := constraint.Parse(line)
			require.NoError(t, err)
			return expr.Eval(has)
		}
	}
	return true
}

func TestGeneratedPackageCompiles(t *testing.T) {
	boards := builtinBoards(t)
	files, err := Generate(boards, "boards")
	require.NoError(t, err)

	assert.NoError(t, typeCheck(t, files))
	for _, b := range boards {
		tags := append([]string{b.Tag()}, b.BuildTags()...)
		assert.NoError(t, typeCheck(t, files, tags...), b.Name())
	}
}

func TestTwoBoardsInOneBuildFail(t *testing.T) {
	boards := builtinBoards(t)
	files, err := Generate(boards, "boards")
	require.NoError(t, err)

	var tags []string
	for _, b := range boards {
		tags = append(tags, b.Tag())
		tags = append(tags, b.BuildTags()...)
	}
	err = typeCheck(t, files, tags...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selectedVariant redeclared")
}
