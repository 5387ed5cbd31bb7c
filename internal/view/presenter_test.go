package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/report"
)

func newPresenter(t *testing.T, cfg CountdownConfig, ids []string) (*ErrorPresenter, *Page, *Visibility) {
	t.Helper()
	page := NewPage(zap.NewNop(), ids)
	vis := NewVisibility(page)
	p := NewErrorPresenter(render.MustNewRegistry(), page, vis, cfg, zap.NewNop())
	t.Cleanup(p.Close)
	return p, page, vis
}

func TestErrorPresenter_ShowRendersBanner(t *testing.T) {
	p, page, vis := newPresenter(t, CountdownConfig{Duration: time.Hour, Tick: time.Minute, Fade: time.Second}, report.Regions)
	page.SetVisible(report.RegionMain, true)
	page.SetVisible(report.RegionLoading, true)

	require.NoError(t, p.Show("Fetching Error", "crawl <failed>", 502))

	banner, _ := page.Region(report.RegionError)
	assert.True(t, banner.Visible)
	assert.Contains(t, string(banner.HTML), "Fetching Error")
	assert.Contains(t, string(banner.HTML), "crawl &lt;failed&gt;")
	assert.Contains(t, string(banner.HTML), "502")

	main, _ := page.Region(report.RegionMain)
	loading, _ := page.Region(report.RegionLoading)
	assert.False(t, main.Visible)
	assert.False(t, loading.Visible)
	assert.Equal(t, StateError, vis.State())

	progress, _ := page.Region(report.RegionProgress)
	assert.InDelta(t, 100, progress.Progress, 0.001)
	require.NotNil(t, p.Active())
}

func TestErrorPresenter_NewErrorReplacesCountdown(t *testing.T) {
	p, page, _ := newPresenter(t, CountdownConfig{Duration: time.Hour, Tick: time.Minute, Fade: time.Second}, report.Regions)

	var started int
	p.OnCountdownStart(func() { started++ })

	require.NoError(t, p.Show("Error", "first", 0))
	first := p.Active()
	require.NoError(t, p.Show("Error", "second", 0))
	second := p.Active()

	assert.Equal(t, 2, started)
	assert.NotSame(t, first, second)
	assert.False(t, first.Active())
	assert.True(t, second.Active())

	banner, _ := page.Region(report.RegionError)
	assert.Contains(t, string(banner.HTML), "second")
	assert.NotContains(t, string(banner.HTML), "first")
}

func TestErrorPresenter_AutoDismisses(t *testing.T) {
	p, page, vis := newPresenter(t, fastCountdown, report.Regions)

	require.NoError(t, p.Show("Error", "boom", 0))

	require.Eventually(t, func() bool {
		return vis.State() == StateInitial
	}, time.Second, 5*time.Millisecond)

	banner, _ := page.Region(report.RegionError)
	assert.False(t, banner.Visible)
	assert.Contains(t, banner.Classes, fadeOutClass)

	progress, _ := page.Region(report.RegionProgress)
	assert.Zero(t, progress.Progress)
	assert.Nil(t, p.Active())
}

func TestErrorPresenter_ShowResetsFade(t *testing.T) {
	p, page, vis := newPresenter(t, fastCountdown, report.Regions)

	require.NoError(t, p.Show("Error", "one", 0))
	require.Eventually(t, func() bool { return vis.State() == StateInitial }, time.Second, 5*time.Millisecond)

	require.NoError(t, p.Show("Error", "two", 0))
	banner, _ := page.Region(report.RegionError)
	assert.NotContains(t, banner.Classes, fadeOutClass)
	assert.True(t, banner.Visible)
}

func TestErrorPresenter_EveryBannerStartsCountdown(t *testing.T) {
	p, page, _ := newPresenter(t, CountdownConfig{Duration: time.Hour, Tick: time.Minute, Fade: time.Second}, report.Regions)

	for _, code := range []int{0, 404, 500} {
		require.NoError(t, p.Show("Error", "boom", code))

		banner, _ := page.Region(report.RegionError)
		assert.Contains(t, string(banner.HTML), `id="`+report.RegionProgress+`"`)
		require.NotNil(t, p.Active(), "code %d", code)
	}
}
