package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
)

var (
	// ErrCloudDisposed is returned by Replace after Dispose has been called.
	ErrCloudDisposed = errors.New("displayed cloud disposed")

	// ErrNilCloud is returned by Replace when no cloud is given.
	ErrNilCloud = errors.New("nil point cloud")
)

// CloudResource is an uploaded point cloud owned by a DisplayedCloud.
type CloudResource interface {
	// InstanceCount returns the number of stars in the resource.
	InstanceCount() int

	// Release frees the resource. It is called exactly once by the owning DisplayedCloud.
	Release()
}

// Uploader turns a generated point cloud into a drawable CloudResource.
type Uploader interface {
	// Upload creates the resource for a cloud.
	//
	// Parameters:
	//   - cloud: the generated cloud; the uploader must not retain it
	//
	// Returns:
	//   - CloudResource: the uploaded resource
	//   - error: an error if the upload failed
	Upload(cloud *galaxy.PointCloud) (CloudResource, error)
}

// DisplayedCloud is the single slot holding the point cloud currently on screen.
//
// Replacement follows last-writer-wins by sequence number: a cloud tagged with a sequence that is
// not newer than the installed one is rejected before it is uploaded. The previous resource is
// released in the same critical section that installs its successor, and Draw holds that same lock,
// so the render side never observes a released resource.
type DisplayedCloud interface {
	// Replace uploads cloud and installs it in place of the current resource.
	//
	// Parameters:
	//   - cloud: the cloud to display
	//   - seq: the commit sequence that produced the cloud
	//
	// Returns:
	//   - bool: true if the cloud was installed, false if seq was stale
	//   - error: ErrNilCloud, ErrCloudDisposed, or a wrapped upload error
	Replace(cloud *galaxy.PointCloud, seq uint64) (bool, error)

	// Current returns the installed resource, or nil before the first Replace.
	//
	// Returns:
	//   - CloudResource: the installed resource
	Current() CloudResource

	// Sequence returns the sequence number of the installed resource.
	//
	// Returns:
	//   - uint64: the installed sequence, 0 before the first Replace
	Sequence() uint64

	// Live returns the number of resources uploaded by this slot and not yet released.
	//
	// Returns:
	//   - int: 0 or 1
	Live() int

	// Draw runs fn with the installed resource while holding the slot lock.
	// fn is not called when nothing is installed.
	//
	// Parameters:
	//   - fn: the draw function
	Draw(fn func(CloudResource))

	// Dispose releases the installed resource. Later Replace calls fail with ErrCloudDisposed.
	Dispose()
}

type displayedCloud struct {
	mu       *sync.Mutex
	uploader Uploader
	current  CloudResource
	seq      uint64
	live     int
	disposed bool
}

var _ DisplayedCloud = &displayedCloud{}

// NewDisplayedCloud creates an empty slot that uploads through the given Uploader.
//
// Parameters:
//   - uploader: the uploader used by Replace
//
// Returns:
//   - DisplayedCloud: the empty slot
func NewDisplayedCloud(uploader Uploader) DisplayedCloud {
	return &displayedCloud{
		mu:       &sync.Mutex{},
		uploader: uploader,
	}
}

func (d *displayedCloud) Replace(cloud *galaxy.PointCloud, seq uint64) (bool, error) {
	if cloud == nil {
		return false, ErrNilCloud
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return false, ErrCloudDisposed
	}
	if d.current != nil && seq <= d.seq {
		return false, nil
	}

	res, err := d.uploader.Upload(cloud)
	if err != nil {
		return false, fmt.Errorf("upload cloud %d: %w", seq, err)
	}
	d.live++

	if d.current != nil {
		d.current.Release()
		d.live--
	}
	d.current = res
	d.seq = seq
	return true, nil
}

func (d *displayedCloud) Current() CloudResource {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *displayedCloud) Sequence() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}

func (d *displayedCloud) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

func (d *displayedCloud) Draw(fn func(CloudResource)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return
	}
	fn(d.current)
}

func (d *displayedCloud) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disposed = true
	if d.current != nil {
		d.current.Release()
		d.live--
		d.current = nil
	}
}
