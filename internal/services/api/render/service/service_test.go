package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"draftdesk/internal/core/actions"
	"draftdesk/internal/core/highlight"
	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/platform/testkit"
	"draftdesk/internal/services/api/render/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSvc(t *testing.T, hl bool) (*Svc, *actions.Memory) {
	t.Helper()
	mem := &actions.Memory{}
	d := actions.NewDispatcher(mem, actions.WithReset(time.Hour))
	return New(highlight.New(""), actions.NewRegistry(d, 8), nil, hl), mem
}

func TestNew_RequiresDeps(t *testing.T) {
	d := actions.NewDispatcher(&actions.Memory{})
	testkit.MustPanic(t, func() { New(nil, actions.NewRegistry(d, 1), nil, true) })
	testkit.MustPanic(t, func() { New(highlight.New(""), nil, nil, true) })
}

func TestRender_AssignsContainer(t *testing.T) {
	s, _ := newSvc(t, false)
	out, err := s.Render(context.Background(), domain.RenderInput{Text: "**hi**"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ContainerID)
	assert.Contains(t, out.HTML, `<strong class="md-bold">hi</strong>`)

	again, err := s.Render(context.Background(), domain.RenderInput{Text: "**hi** there", ContainerID: out.ContainerID})
	require.NoError(t, err)
	assert.Equal(t, out.ContainerID, again.ContainerID)
}

func TestRender_HighlightDefaultAndOverride(t *testing.T) {
	s, _ := newSvc(t, true)
	src := "```go\nfunc main() {}\n```"

	on, err := s.Render(context.Background(), domain.RenderInput{Text: src, ContainerID: "a"})
	require.NoError(t, err)
	assert.Contains(t, on.HTML, "chroma")

	off := false
	plain, err := s.Render(context.Background(), domain.RenderInput{Text: src, ContainerID: "a", Highlight: &off})
	require.NoError(t, err)
	assert.NotContains(t, plain.HTML, "chroma")
}

func TestClick_CopiesFromLatestRender(t *testing.T) {
	s, mem := newSvc(t, true)
	ctx := context.Background()

	_, err := s.Render(ctx, domain.RenderInput{Text: "see https://a.io", ContainerID: "pane"})
	require.NoError(t, err)
	_, err = s.Render(ctx, domain.RenderInput{Text: "see https://a.io and https://b.io", ContainerID: "pane"})
	require.NoError(t, err)

	res, err := s.Click(ctx, domain.ActionInput{ContainerID: "pane", Action: "copy-url", Index: 1})
	require.NoError(t, err)
	assert.True(t, res.Copied)
	assert.Equal(t, len("https://b.io"), res.Chars)
	assert.Equal(t, "https://b.io", mem.Last())

	st, err := s.Copied(ctx, "pane")
	require.NoError(t, err)
	assert.Equal(t, []domain.CopiedButton{{Action: "copy-url", Index: 1}}, st.Copied)
	assert.Equal(t, time.Hour.Milliseconds(), st.ResetMS)
}

func TestClick_MissingButtonIsNotAnError(t *testing.T) {
	s, mem := newSvc(t, false)
	ctx := context.Background()
	_, _ = s.Render(ctx, domain.RenderInput{Text: "plain", ContainerID: "p"})

	res, err := s.Click(ctx, domain.ActionInput{ContainerID: "p", Action: "copy-code"})
	require.NoError(t, err)
	assert.False(t, res.Copied)
	assert.Zero(t, mem.Writes())
}

func TestClick_UnknownContainer(t *testing.T) {
	s, _ := newSvc(t, false)
	_, err := s.Click(context.Background(), domain.ActionInput{ContainerID: "nope", Action: "copy-url"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))

	_, err = s.Copied(context.Background(), "nope")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
}

func TestCSS(t *testing.T) {
	s, _ := newSvc(t, true)
	css, err := s.CSS(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.Contains(css, ".chroma"))
}
