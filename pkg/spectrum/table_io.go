package spectrum

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteTable serializes a SigmoidTable as little-endian float32s: the
// tableRes z-node values, followed by the 3*tableRes^3*3 coefficients in
// channel/z/y/x/coeff order. This lets a build step bake the table once and
// ship it as a data file instead of re-running Gauss-Newton at every
// process start.
func WriteTable(w io.Writer, t *SigmoidTable) error {
	for _, z := range t.ZNodes {
		if err := writeFloat32(w, z); err != nil {
			return fmt.Errorf("spectrum: write z-node: %w", err)
		}
	}
	for channel := 0; channel < 3; channel++ {
		for zi := 0; zi < tableRes; zi++ {
			for yi := 0; yi < tableRes; yi++ {
				for xi := 0; xi < tableRes; xi++ {
					for k := 0; k < 3; k++ {
						if err := writeFloat32(w, t.Coeffs[channel][zi][yi][xi][k]); err != nil {
							return fmt.Errorf("spectrum: write coeff: %w", err)
						}
					}
				}
			}
		}
	}
	return nil
}

// ReadTable is the inverse of WriteTable.
func ReadTable(r io.Reader) (*SigmoidTable, error) {
	var t SigmoidTable
	for i := range t.ZNodes {
		v, err := readFloat32(r)
		if err != nil {
			return nil, fmt.Errorf("spectrum: read z-node: %w", err)
		}
		t.ZNodes[i] = v
	}
	for channel := 0; channel < 3; channel++ {
		for zi := 0; zi < tableRes; zi++ {
			for yi := 0; yi < tableRes; yi++ {
				for xi := 0; xi < tableRes; xi++ {
					for k := 0; k < 3; k++ {
						v, err := readFloat32(r)
						if err != nil {
							return nil, fmt.Errorf("spectrum: read coeff: %w", err)
						}
						t.Coeffs[channel][zi][yi][xi][k] = v
					}
				}
			}
		}
	}
	return &t, nil
}

func writeFloat32(w io.Writer, v float64) error {
	return binary.Write(w, binary.LittleEndian, float32(v))
}

func readFloat32(r io.Reader) (float64, error) {
	var v float32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, err
	}
	return float64(v), nil
}
