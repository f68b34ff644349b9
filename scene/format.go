package scene

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/achilleasa/hairbvh/types"
)

// LoadCurveFile reads a line-oriented curve-scene text format used by the
// CLI's build subcommand. Each non-blank, non-comment line is:
//
//	curve px py pz pr px py pz pr px py pz pr px py pz pr
//
// four (position, radius) control points for one cubic Bezier. Lines
// starting with '#' and blank lines are ignored. The whole file becomes a
// single curve set, which is the scene's only geometry. This is a
// convenience ingestion path, not a wire protocol.
func LoadCurveFile(filename string) (*Scene, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	defer f.Close()

	cs := &CurveSet{}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if tokens[0] != "curve" {
			return nil, fmt.Errorf("scene: %s:%d: unrecognised directive %q", filename, lineNo, tokens[0])
		}
		if len(tokens) != 1+4*4 {
			return nil, fmt.Errorf("scene: %s:%d: expected 16 numbers after \"curve\", got %d", filename, lineNo, len(tokens)-1)
		}

		var values [16]float32
		for i, tok := range tokens[1:] {
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, fmt.Errorf("scene: %s:%d: %w", filename, lineNo, err)
			}
			values[i] = float32(v)
		}

		start := len(cs.Vertices)
		for i := 0; i < 4; i++ {
			off := i * 4
			cs.Vertices = append(cs.Vertices, types.XYZW(values[off], values[off+1], values[off+2], values[off+3]))
		}
		cs.Curves = append(cs.Curves, start)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", filename, err)
	}

	s := NewScene()
	if _, err := s.AddCurveSet(cs); err != nil {
		return nil, err
	}
	return s, nil
}
