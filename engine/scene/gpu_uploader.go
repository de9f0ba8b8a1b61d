package scene

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-galaxy/engine/model"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer"
	"github.com/Carmen-Shannon/oxy-galaxy/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
)

// gpuUploader packs clouds into star models and uploads them as instance vertex buffers.
type gpuUploader struct {
	r     renderer.Renderer
	count atomic.Uint64
}

var _ Uploader = &gpuUploader{}

// NewGPUUploader creates an Uploader whose resources are model.Model values backed by a GPU vertex buffer.
//
// Parameters:
//   - r: the renderer used to create instance buffers
//
// Returns:
//   - Uploader: the GPU uploader
func NewGPUUploader(r renderer.Renderer) Uploader {
	return &gpuUploader{r: r}
}

func (u *gpuUploader) Upload(cloud *galaxy.PointCloud) (CloudResource, error) {
	name := fmt.Sprintf("galaxy_cloud_%d", u.count.Add(1))
	mdl := model.NewModel(cloud,
		model.WithName(name),
		model.WithMeshProvider(bind_group_provider.NewBindGroupProvider(name)),
	)
	if err := u.r.InitInstanceBuffer(mdl.MeshProvider(), mdl.InstanceData(), mdl.InstanceCount()); err != nil {
		mdl.Release()
		return nil, err
	}
	return mdl, nil
}
