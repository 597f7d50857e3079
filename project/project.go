// Package project locates a Solidity project's root directory from an
// arbitrary starting path, the way a security-auditing pipeline would
// before handing a path to the CLI.
package project

import (
	"os"
	"path/filepath"
	"regexp"
)

// Kind is the detected project toolchain, used only for diagnostics.
type Kind string

const (
	KindFoundry Kind = "foundry"
	KindHardhat Kind = "hardhat"
	KindTruffle Kind = "truffle"
	KindNode    Kind = "node"
	KindGit     Kind = "git"
	KindUnknown Kind = "unknown"
)

// Info describes a detected project.
type Info struct {
	RootPath string
	Kind     Kind
	Name     string
}

type marker struct {
	file string
	kind Kind
}

// Detector searches upward from a path for Solidity project markers.
type Detector struct {
	markers []marker
}

// New builds a Detector with the standard Solidity-toolchain marker set,
// most specific first so e.g. a foundry.toml wins over a sibling
// package.json in the same directory.
func New() *Detector {
	return &Detector{
		markers: []marker{
			{"foundry.toml", KindFoundry},
			{"hardhat.config.js", KindHardhat},
			{"hardhat.config.ts", KindHardhat},
			{"truffle-config.js", KindTruffle},
			{"package.json", KindNode},
			{".git", KindGit},
		},
	}
}

// Detect walks up from path looking for the first directory containing one
// of the configured markers. If path is a file, search starts at its
// parent directory. If no marker is found, Info.RootPath falls back to
// that starting directory and Kind is KindUnknown — detection failure is not fatal,
// since the CLI always has an explicit project-root argument to fall
// back on.
func (d *Detector) Detect(path string) (*Info, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	dir := startDir
	for {
		for _, m := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
				return &Info{
					RootPath: dir,
					Kind:     m.kind,
					Name:     extractName(dir, m.kind),
				}, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return &Info{RootPath: startDir, Kind: KindUnknown, Name: filepath.Base(startDir)}, nil
}

var packageNameRegex = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)

func extractName(rootPath string, kind Kind) string {
	if kind == KindHardhat || kind == KindNode || kind == KindTruffle {
		if data, err := os.ReadFile(filepath.Join(rootPath, "package.json")); err == nil {
			if m := packageNameRegex.FindSubmatch(data); len(m) == 2 {
				return string(m[1])
			}
		}
	}
	return filepath.Base(rootPath)
}
