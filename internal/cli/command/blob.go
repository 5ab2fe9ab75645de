package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/pkg/blob"
)

// BlobCommand returns the blob subcommand group.
func BlobCommand() *cli.Command {
	return &cli.Command{
		Name:  "blob",
		Usage: "Checksum and encode binary files",
		Subcommands: []*cli.Command{
			{
				Name:      "checksum",
				Usage:     "Print the SHA-256 of a file as hex",
				ArgsUsage: "FILE",
				Action:    blobChecksum,
			},
			{
				Name:      "encode",
				Usage:     "Print a file as base64",
				ArgsUsage: "FILE",
				Action:    blobEncode,
			},
			{
				Name:      "decode",
				Usage:     "Decode base64 text",
				ArgsUsage: "TEXT",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "Write the bytes to this file instead of stdout"},
				},
				Action: blobDecode,
			},
		},
	}
}

func readArgFile(c *cli.Context) ([]byte, error) {
	if c.NArg() != 1 {
		return nil, errors.New("expected exactly one FILE argument")
	}
	return os.ReadFile(c.Args().First())
}

type checksumView struct {
	File   string `json:"file"`
	Size   int    `json:"size"`
	SHA256 string `json:"sha256"`
}

func blobChecksum(c *cli.Context) error {
	data, err := readArgFile(c)
	if err != nil {
		return err
	}
	return render(c, checksumView{
		File:   c.Args().First(),
		Size:   len(data),
		SHA256: blob.ChecksumHex(data),
	})
}

func blobEncode(c *cli.Context) error {
	data, err := readArgFile(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, blob.ToBase64(data))
	return nil
}

func blobDecode(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one TEXT argument")
	}
	data, ok := blob.FromBase64(c.Args().First())
	if !ok {
		return errors.New("input is not valid base64")
	}
	if out := c.String("out"); out != "" {
		return os.WriteFile(out, data, 0o644)
	}
	_, err := c.App.Writer.Write(data)
	return err
}
