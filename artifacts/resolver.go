package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	sdkerrors "github.com/dshop-nft/dshop/sdk/errors"
)

const (
	artifactExt   = ".json"
	debugExt      = ".dbg.json"
	buildInfoDir  = "build-info"
	fqnSeparator  = ":"
	solSourceExt  = ".sol"
	notFoundMsg   = "artifact not found, has the contract been compiled?"
	ambiguousMsg  = "multiple artifacts match, use a fully qualified name"
	invalidMsg    = "invalid artifact"
	unreadableMsg = "unable to read artifact"
)

// Resolver finds artifacts inside a Hardhat artifacts directory, laid out as
// <dir>/<sourceName>/<ContractName>.json.
type Resolver struct {
	dir string
}

// NewResolver returns a Resolver rooted at dir.
func NewResolver(dir string) (*Resolver, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("artifacts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifacts directory: %s is not a directory", dir)
	}

	return &Resolver{dir: dir}, nil
}

// Dir returns the root directory of the resolver.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve returns the artifact of the named contract. The name is either a bare contract name
// ("DSHOP") or a fully qualified one ("contracts/DSHOP.sol:DSHOP").
func (r *Resolver) Resolve(name string) (*Artifact, error) {
	source, contract := splitName(name)
	if contract == "" {
		return nil, sdkerrors.NewResolutionError(name, "empty contract name", nil)
	}

	paths, err := r.candidates(source, contract)
	if err != nil {
		return nil, sdkerrors.NewResolutionError(name, unreadableMsg, err)
	}

	switch len(paths) {
	case 0:
		return nil, sdkerrors.NewResolutionError(name, notFoundMsg, nil)
	case 1:
	default:
		return nil, sdkerrors.NewResolutionError(name, ambiguousMsg+": "+strings.Join(paths, ", "), nil)
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		return nil, sdkerrors.NewResolutionError(name, unreadableMsg, err)
	}

	artifact, err := Parse(data)
	if err != nil {
		return nil, sdkerrors.NewResolutionError(name, invalidMsg, err)
	}

	if artifact.ContractName != contract {
		return nil, sdkerrors.NewResolutionError(name, invalidMsg,
			fmt.Errorf("file %s holds contract %s", paths[0], artifact.ContractName))
	}

	return artifact, nil
}

// List returns the fully qualified names of every deployable artifact under the directory.
func (r *Resolver) List() ([]string, error) {
	var names []string
	err := r.walk(func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if IsAbstract(data) {
			return nil
		}

		artifact, err := Parse(data)
		if err != nil {
			// Files that are not artifacts are skipped
			return nil //nolint:nilerr
		}
		names = append(names, artifact.FullyQualifiedName())

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(names)

	return names, nil
}

func (r *Resolver) candidates(source, contract string) ([]string, error) {
	if source != "" {
		path := filepath.Join(r.dir, filepath.FromSlash(source), contract+artifactExt)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}

			return nil, err
		}

		return []string{path}, nil
	}

	var paths []string
	err := r.walk(func(path string) error {
		if filepath.Base(path) == contract+artifactExt {
			paths = append(paths, path)
		}

		return nil
	})

	return paths, err
}

// walk visits every artifact file, skipping debug files and build info.
func (r *Resolver) walk(visit func(path string) error) error {
	return filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == buildInfoDir {
				return filepath.SkipDir
			}

			return nil
		}
		if !strings.HasSuffix(path, artifactExt) || strings.HasSuffix(path, debugExt) {
			return nil
		}

		return visit(path)
	})
}

// splitName splits "contracts/X.sol:Name" into its source and contract parts.
func splitName(name string) (string, string) {
	idx := strings.LastIndex(name, fqnSeparator)
	if idx < 0 {
		return "", name
	}

	source := name[:idx]
	if !strings.HasSuffix(source, solSourceExt) {
		return "", name
	}

	return source, name[idx+1:]
}
