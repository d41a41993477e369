package image

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/wippyai/hexlayout/errors"
)

// Load reads an image file. Names ending in .hex (any case) are parsed as
// Intel HEX and names ending in .wasm contribute the data segments of a
// WebAssembly module; everything else is a raw binary placed at address zero.
func Load(fs afero.Fs, name string) (*Sparse, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Detail("image %q not found", name).
				Cause(err).
				Build()
		}
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "read image "+name)
	}

	var img *Sparse
	switch ext := filepath.Ext(name); {
	case strings.EqualFold(ext, ".hex"):
		img, err = ParseIntelHex(bytes.NewReader(data))
	case strings.EqualFold(ext, ".wasm"):
		img, err = ParseWasmData(bytes.NewReader(data))
	default:
		img = FromBytes(0, data)
	}
	if err != nil {
		return nil, err
	}

	lo, hi := img.Bounds()
	Logger().Debug("image loaded",
		zap.String("file", name),
		zap.Int("segments", len(img.Segments())),
		zap.String("populated", humanize.Bytes(img.Len())),
		zap.String("range", humanize.Comma(int64(lo))+".."+humanize.Comma(int64(hi))),
	)
	return img, nil
}
