package mat

import (
	log "github.com/sirupsen/logrus"

	"github.com/born-ml/cvmat/internal/parallel"
)

// GetDataAsync is GetData run on the shared worker pool. The Future resolves
// with the same bytes or error GetData would return. m must not be mutated
// until the Future is done.
func (m *Mat) GetDataAsync() *parallel.Future[[]byte] {
	if m.region {
		return parallel.Resolved[[]byte](nil, matErrorf("GetDataAsync", ErrUnsupportedOnRegionView, ""))
	}
	log.Debugf("mat: async export of %dx%d %s", m.rows, m.cols, m.typ)
	return parallel.Go(parallel.Shared(), func() ([]byte, error) {
		return m.packed(), nil
	})
}
