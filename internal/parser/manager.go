package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chuanjin/toonbench/internal/logger"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ScriptLoader registers scripted formats found on disk.
type ScriptLoader struct {
	registry *Registry
}

func NewScriptLoader(r *Registry) *ScriptLoader {
	return &ScriptLoader{registry: r}
}

// LoadDir compiles every .go file in dir and registers it under the file's
// base name. Names already taken are skipped. A missing directory loads
// nothing. It returns the names it registered.
func (l *ScriptLoader) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read scripts dir %s", dir)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".go" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".go")
		if _, taken := l.registry.Lookup(name); taken {
			logger.Warn("Script skipped, format already registered", zap.String("format", name))
			continue
		}

		code, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return loaded, errors.Wrapf(err, "read script %s", entry.Name())
		}
		if err := l.Register(name, string(code)); err != nil {
			return loaded, err
		}
		logger.Info("Loaded scripted format", zap.String("format", name))
		loaded = append(loaded, name)
	}
	return loaded, nil
}

// Register compiles code and binds it under name.
func (l *ScriptLoader) Register(name, code string) error {
	p, err := NewScriptParser(name, code)
	if err != nil {
		return err
	}
	l.registry.Register(p)
	return nil
}
