package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/evilsocket/islazy/tui"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/cvmat/internal/serialization"
	"github.com/born-ml/cvmat/mat"
)

func cmdInfo(w io.Writer, path string) error {
	r, err := serialization.NewReader(path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	header := r.Header()
	fmt.Fprintf(w, "%s: format v%d, created %s, %d matrices, %s data (compressed=%t)\n",
		path, header.FormatVersion, header.CreatedAt.Format("2006-01-02 15:04:05"),
		len(header.Matrices), humanize.Bytes(uint64(header.DataSize)), r.Compressed()) //nolint:gosec // validated non-negative

	rows := make([][]string, 0, len(header.Matrices))
	for _, m := range header.Matrices {
		rows = append(rows, []string{
			m.Name,
			m.Type,
			fmt.Sprintf("%dx%d", m.Rows, m.Cols),
			humanize.Bytes(uint64(m.Size)), //nolint:gosec // validated non-negative
		})
	}
	tui.Table(w, []string{"name", "type", "shape", "size"}, rows)

	for k, v := range header.Metadata {
		fmt.Fprintf(w, "  %s = %s\n", k, v)
	}
	return nil
}

func cmdStats(w io.Writer, path string) error {
	mats, _, err := serialization.ReadFile(path)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(mats))
	for _, nm := range mats {
		s, err := matStats(nm.Mat)
		if err != nil {
			return fmt.Errorf("%s: %w", nm.Name, err)
		}
		rows = append(rows, []string{
			nm.Name,
			nm.Mat.Type().String(),
			fmt.Sprintf("%.6g", s.norm),
			fmt.Sprintf("%.6g", s.min),
			fmt.Sprintf("%.6g", s.max),
		})
	}
	tui.Table(w, []string{"name", "type", "L2", "min", "max"}, rows)
	return nil
}

type stats struct {
	norm, min, max float64
}

func matStats(m *mat.Mat) (stats, error) {
	var s stats
	if m.Empty() {
		return s, nil
	}
	n, err := m.Norm(mat.NormL2)
	if err != nil {
		return s, err
	}
	s.norm = n

	px := m.GetDataAsPixels()
	vals := make([]float64, 0, m.Total()*m.Channels())
	for _, row := range px {
		for _, p := range row {
			vals = append(vals, p...)
		}
	}
	s.min = floats.Min(vals)
	s.max = floats.Max(vals)
	return s, nil
}

// demoMats builds a small set of matrices covering a few depths and
// operations.
func demoMats() ([]mat.NamedMat, error) {
	ramp, err := mat.New(16, 16, mat.CV8UC1)
	if err != nil {
		return nil, err
	}
	for r := 0; r < 16; r++ {
		for c := 0; c < 16; c++ {
			if err := ramp.Set(r, c, mat.Scalar(r*16+c)); err != nil {
				return nil, err
			}
		}
	}

	color, err := mat.NewWithValue(8, 12, mat.CV8UC3, mat.NewVec3(255, 128, 0))
	if err != nil {
		return nil, err
	}

	f, err := ramp.ConvertTo(mat.CV32FC1, 1.0/255, 0)
	if err != nil {
		return nil, err
	}
	spectrum, err := f.DFT(0, 0)
	if err != nil {
		return nil, err
	}

	padded, err := color.PadToSquare(mat.Scalar(0))
	if err != nil {
		return nil, err
	}

	return []mat.NamedMat{
		{Name: "ramp", Mat: ramp},
		{Name: "color", Mat: color},
		{Name: "spectrum", Mat: spectrum},
		{Name: "padded", Mat: padded},
	}, nil
}

func cmdDemo(w io.Writer, path string, compress bool) error {
	mats, err := demoMats()
	if err != nil {
		return err
	}
	opts := mat.SaveOptions{
		Compress: compress,
		Metadata: map[string]string{"generator": "cvmat demo"},
	}
	if err := mat.SaveAll(path, mats, opts); err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	log.Debugf("demo: %d matrices written", len(mats))
	fmt.Fprintf(w, "wrote %s (%s)\n", path, humanize.Bytes(uint64(st.Size()))) //nolint:gosec // file sizes are non-negative
	return nil
}

func cmdExport(w io.Writer, src, dst string) error {
	mats, header, err := serialization.ReadFile(src)
	if err != nil {
		return err
	}
	if err := serialization.WriteSafeTensorsFile(dst, mats, header.Metadata); err != nil {
		return err
	}
	fmt.Fprintf(w, "exported %d matrices to %s\n", len(mats), dst)
	return nil
}
