package driver

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the on-disk configuration (mcc.toml). Every field is
// optional; unset fields leave the corresponding Config default in place.
//
//	[toolchain]
//	cc = "gcc"
//	keep_asm = true
//	symbol_prefix = "_"
type FileConfig struct {
	Toolchain ToolchainConfig `toml:"toolchain"`
}

// ToolchainConfig configures how the external assembler/linker is invoked.
type ToolchainConfig struct {
	CC           string  `toml:"cc"`
	KeepAsm      *bool   `toml:"keep_asm"`
	SymbolPrefix *string `toml:"symbol_prefix"`
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc FileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}

// Apply overlays the file settings onto cfg. Only fields present in the
// file override cfg.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc == nil {
		return
	}
	if fc.Toolchain.CC != "" {
		cfg.CC = fc.Toolchain.CC
	}
	if fc.Toolchain.KeepAsm != nil {
		cfg.KeepAsm = *fc.Toolchain.KeepAsm
	}
	if fc.Toolchain.SymbolPrefix != nil {
		cfg.Target.SymbolPrefix = *fc.Toolchain.SymbolPrefix
	}
}
