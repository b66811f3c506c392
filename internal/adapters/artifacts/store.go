package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// Artifact is a compiled contract ready to deploy
type Artifact struct {
	Name     string
	Path     string
	ABI      abi.ABI
	Bytecode []byte
}

// Store indexes compiled contract artifacts under a directory by contract
// name. Hardhat ("bytecode": "0x...") and Foundry ("bytecode": {"object":
// "0x..."}) layouts are both understood.
type Store struct {
	root string

	once  sync.Once
	index map[string][]string
	err   error

	mu    sync.Mutex
	cache map[string]*Artifact
}

// NewStore creates a store over the configured artifacts directory
func NewStore(cfg *config.RuntimeConfig) *Store {
	return NewStoreAt(cfg.ArtifactsDir)
}

// NewStoreAt creates a store over root
func NewStoreAt(root string) *Store {
	return &Store{
		root:  root,
		cache: make(map[string]*Artifact),
	}
}

// Get returns the artifact for a contract name
func (s *Store) Get(name string) (*Artifact, error) {
	s.once.Do(s.buildIndex)
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.cache[name]; ok {
		return a, nil
	}

	paths := s.index[name]
	switch len(paths) {
	case 0:
		return nil, fmt.Errorf("%w: artifact %s in %s", domain.ErrNotFound, name, s.root)
	case 1:
	default:
		return nil, fmt.Errorf("artifact %s is ambiguous: %s", name, strings.Join(paths, ", "))
	}

	a, err := loadArtifact(name, paths[0])
	if err != nil {
		return nil, err
	}
	s.cache[name] = a
	return a, nil
}

// Names returns every indexed contract name, sorted
func (s *Store) Names() ([]string, error) {
	s.once.Do(s.buildIndex)
	if s.err != nil {
		return nil, s.err
	}
	names := make([]string, 0, len(s.index))
	for name := range s.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) buildIndex() {
	s.index = make(map[string][]string)

	if _, err := os.Stat(s.root); err != nil {
		s.err = fmt.Errorf("artifacts directory %s: %w", s.root, err)
		return
	}

	s.err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hardhat build-info holds full compiler input/output, not artifacts
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		base := d.Name()
		if !strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".dbg.json") || strings.HasSuffix(base, ".metadata.json") {
			return nil
		}
		name := strings.TrimSuffix(base, ".json")
		s.index[name] = append(s.index[name], path)
		return nil
	})
}

type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

func loadArtifact(name, path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", name, err)
	}
	if len(file.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", name)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", name, err)
	}

	bytecodeHex, err := decodeBytecode(file.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", name, err)
	}
	if strings.Contains(bytecodeHex, "__") {
		return nil, fmt.Errorf("artifact %s has unlinked libraries", name)
	}

	return &Artifact{
		Name:     name,
		Path:     path,
		ABI:      parsedABI,
		Bytecode: common.FromHex(bytecodeHex),
	}, nil
}

// decodeBytecode accepts a hex string or an object with an "object" field
func decodeBytecode(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing bytecode")
	}

	var hex string
	if err := json.Unmarshal(raw, &hex); err == nil {
		return hex, nil
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("unrecognized bytecode format: %w", err)
	}
	return obj.Object, nil
}
