package sink

import (
	"bytes"

	pkgio "github.com/matzehuels/sardine/pkg/io"
	"github.com/matzehuels/sardine/pkg/lot"
)

// RenderJSON encodes pl as a lot document.
func RenderJSON(pl *lot.ParkingLot) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteLot(pl, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
