package gen

import (
	"errors"
	"fmt"
	"go/build/constraint"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/atsam3x/sam3hal/pkg/board"
)

// ErrNoBoards is returned when there is nothing to generate.
var ErrNoBoards = errors.New("no boards to generate")

// File is one generated source file.
type File struct {
	Name    string
	Content []byte
}

type header struct {
	Package   string
	BuildLine string
}

type boardData struct {
	header
	Name          string
	Variant       string
	PAC           string
	PACImportPath string
	PanicStrategy string
	RuntimeShim   bool
	Fingerprint   string
	Modules       []string
}

// BuildExpr returns the build constraint that selects b: its board tag and
// every tag of its activation.
func BuildExpr(b *board.Board) constraint.Expr {
	var expr constraint.Expr = &constraint.TagExpr{Tag: b.Tag()}
	for _, tag := range b.BuildTags() {
		expr = &constraint.AndExpr{X: expr, Y: &constraint.TagExpr{Tag: tag}}
	}
	return expr
}

// FallbackExpr returns the constraint satisfied when none of boards is
// selected.
func FallbackExpr(boards []*board.Board) constraint.Expr {
	var sel constraint.Expr
	for _, b := range boards {
		if sel == nil {
			sel = BuildExpr(b)
			continue
		}
		sel = &constraint.OrExpr{X: sel, Y: BuildExpr(b)}
	}
	return &constraint.NotExpr{X: sel}
}

// FileName returns the generated file name for b, e.g. "board_arduino_due.go".
func FileName(b *board.Board) string {
	return b.Tag() + ".go"
}

// GenerateDeclFile renders the ungated file declaring the Board type and
// the Selected variable.
func GenerateDeclFile(pkg string) ([]byte, error) {
	var sb strings.Builder
	renderTemplate(&sb, "decl", header{Package: pkg})
	return format("board.go", sb.String())
}

// GenerateBoardFile renders the file that sets Selected for b.
func GenerateBoardFile(b *board.Board, pkg string) ([]byte, error) {
	act := b.Activation()
	pac := act.PAC()
	data := boardData{
		header:        header{Package: pkg, BuildLine: "//go:build " + BuildExpr(b).String()},
		Name:          b.Name(),
		Variant:       act.Variant.ID,
		PAC:           pac.Name,
		PACImportPath: pac.ImportPath,
		PanicStrategy: b.PanicStrategy().String(),
		RuntimeShim:   act.RuntimeShim,
		Fingerprint:   act.Fingerprint(),
		Modules:       b.Facade().Modules(),
	}
	var sb strings.Builder
	renderTemplate(&sb, "board", data)
	return format(FileName(b), sb.String())
}

// GenerateSelectFile renders the fallback file compiled when no board in
// boards is selected.
func GenerateSelectFile(boards []*board.Board, pkg string) ([]byte, error) {
	if len(boards) == 0 {
		return nil, ErrNoBoards
	}
	var sb strings.Builder
	renderTemplate(&sb, "none", header{Package: pkg, BuildLine: "//go:build " + FallbackExpr(boards).String()})
	return format("board_none.go", sb.String())
}

// Generate renders every file for boards.
func Generate(boards []*board.Board, pkg string) ([]File, error) {
	if len(boards) == 0 {
		return nil, ErrNoBoards
	}
	seen := make(map[string]string, len(boards))
	for _, b := range boards {
		if other, dup := seen[b.Tag()]; dup {
			return nil, fmt.Errorf("boards %s and %s share build tag %s", other, b.Name(), b.Tag())
		}
		seen[b.Tag()] = b.Name()
	}

	decl, err := GenerateDeclFile(pkg)
	if err != nil {
		return nil, err
	}
	files := []File{{Name: "board.go", Content: decl}}
	for _, b := range boards {
		content, err := GenerateBoardFile(b, pkg)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: FileName(b), Content: content})
	}
	none, err := GenerateSelectFile(boards, pkg)
	if err != nil {
		return nil, err
	}
	return append(files, File{Name: "board_none.go", Content: none}), nil
}

// WriteFiles writes files into dir, creating it if needed.
func WriteFiles(dir string, files ...File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.Name), f.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	return nil
}

func format(name, code string) ([]byte, error) {
	formatted, err := imports.Process(name, []byte(code), nil)
	if err != nil {
		return nil, fmt.Errorf("goimports %s: %w", name, err)
	}
	return formatted, nil
}
