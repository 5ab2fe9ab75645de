package command

import (
	"bytes"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/internal/cli/output"
	"github.com/yndnr/canikit-go/pkg/blob"
	"github.com/yndnr/canikit-go/pkg/wasm"
)

var gzipMagic = []byte{0x1f, 0x8b}

// WasmCommand returns the wasm subcommand group.
func WasmCommand() *cli.Command {
	return &cli.Command{
		Name:  "wasm",
		Usage: "Check canister modules before installing them",
		Subcommands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate a raw or gzipped module",
				ArgsUsage: "FILE",
				Action:    wasmValidate,
			},
		},
	}
}

type moduleView struct {
	File       string `json:"file"`
	Gzipped    bool   `json:"gzipped"`
	Size       string `json:"size"`
	ModuleSize string `json:"module_size"`
	SHA256     string `json:"sha256"`
}

func wasmValidate(c *cli.Context) error {
	data, err := readArgFile(c)
	if err != nil {
		return err
	}

	module := data
	gzipped := bytes.HasPrefix(data, gzipMagic)
	if gzipped {
		module, err = wasm.ValidateGzipped(c.Context, data)
	} else {
		err = wasm.Validate(c.Context, data)
	}
	if err != nil {
		return err
	}

	return render(c, moduleView{
		File:       c.Args().First(),
		Gzipped:    gzipped,
		Size:       output.FormatBytes(int64(len(data))),
		ModuleSize: output.FormatBytes(int64(len(module))),
		SHA256:     blob.ChecksumHex(module),
	})
}
