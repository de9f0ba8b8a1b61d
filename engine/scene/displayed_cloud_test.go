package scene

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResource struct {
	mu       *sync.Mutex
	count    int
	released int
}

func (r *fakeResource) InstanceCount() int {
	return r.count
}

func (r *fakeResource) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released++
}

func (r *fakeResource) releaseCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

type fakeUploader struct {
	mu        sync.Mutex
	resources []*fakeResource
	err       error
}

func (u *fakeUploader) Upload(cloud *galaxy.PointCloud) (CloudResource, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return nil, u.err
	}
	res := &fakeResource{mu: &sync.Mutex{}, count: cloud.Count()}
	u.resources = append(u.resources, res)
	return res, nil
}

func (u *fakeUploader) unreleased() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, r := range u.resources {
		if r.releaseCount() == 0 {
			n++
		}
	}
	return n
}

func cloudOf(n int) *galaxy.PointCloud {
	return &galaxy.PointCloud{Positions: make([]float32, n*3)}
}

func TestDisplayedCloudEmpty(t *testing.T) {
	d := NewDisplayedCloud(&fakeUploader{})
	assert.Nil(t, d.Current())
	assert.Zero(t, d.Sequence())
	assert.Zero(t, d.Live())

	called := false
	d.Draw(func(CloudResource) { called = true })
	assert.False(t, called)
}

func TestDisplayedCloudReplaceLeavesOneLiveResource(t *testing.T) {
	up := &fakeUploader{}
	d := NewDisplayedCloud(up)

	for seq := uint64(1); seq <= 25; seq++ {
		ok, err := d.Replace(cloudOf(int(seq)), seq)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1, d.Live())
	}

	assert.Len(t, up.resources, 25)
	assert.Equal(t, 1, up.unreleased())
	assert.Equal(t, 25, d.Current().InstanceCount())
	assert.Equal(t, uint64(25), d.Sequence())
	for _, r := range up.resources[:24] {
		assert.Equal(t, 1, r.releaseCount(), "each replaced resource is released exactly once")
	}
}

func TestDisplayedCloudRejectsStaleSequence(t *testing.T) {
	up := &fakeUploader{}
	d := NewDisplayedCloud(up)

	ok, err := d.Replace(cloudOf(5), 5)
	require.NoError(t, err)
	require.True(t, ok)

	for _, seq := range []uint64{5, 4, 1} {
		ok, err = d.Replace(cloudOf(9), seq)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Len(t, up.resources, 1, "stale clouds are never uploaded")
	assert.Equal(t, 5, d.Current().InstanceCount())
	assert.Equal(t, uint64(5), d.Sequence())
}

func TestDisplayedCloudUploadErrorKeepsPrevious(t *testing.T) {
	up := &fakeUploader{}
	d := NewDisplayedCloud(up)
	_, err := d.Replace(cloudOf(3), 1)
	require.NoError(t, err)

	boom := errors.New("out of memory")
	up.err = boom
	ok, err := d.Replace(cloudOf(7), 2)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 3, d.Current().InstanceCount())
	assert.Equal(t, uint64(1), d.Sequence())
	assert.Equal(t, 1, d.Live())
}

func TestDisplayedCloudRejectsNil(t *testing.T) {
	d := NewDisplayedCloud(&fakeUploader{})
	_, err := d.Replace(nil, 1)
	assert.ErrorIs(t, err, ErrNilCloud)
}

func TestDisplayedCloudDispose(t *testing.T) {
	up := &fakeUploader{}
	d := NewDisplayedCloud(up)
	_, err := d.Replace(cloudOf(2), 1)
	require.NoError(t, err)

	d.Dispose()
	assert.Nil(t, d.Current())
	assert.Zero(t, d.Live())
	assert.Zero(t, up.unreleased())

	_, err = d.Replace(cloudOf(2), 2)
	assert.ErrorIs(t, err, ErrCloudDisposed)

	d.Dispose()
	assert.Equal(t, 1, up.resources[0].releaseCount())
}

func TestDisplayedCloudConcurrentReplaceAndDraw(t *testing.T) {
	up := &fakeUploader{}
	d := NewDisplayedCloud(up)

	var wg sync.WaitGroup
	for seq := uint64(1); seq <= 64; seq++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			_, err := d.Replace(cloudOf(1), seq)
			assert.NoError(t, err)
		}(seq)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 500 {
			d.Draw(func(res CloudResource) {
				assert.Zero(t, res.(*fakeResource).releaseCount(), "drawn resource is never released")
			})
		}
	}()

	wg.Wait()
	<-done

	assert.Equal(t, uint64(64), d.Sequence())
	assert.Equal(t, 1, d.Live())
	assert.Equal(t, 1, up.unreleased())
}
