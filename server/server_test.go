package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalflux/vitalflux/gateway"
	"github.com/vitalflux/vitalflux/resolve"
	"github.com/vitalflux/vitalflux/schema"
	"github.com/vitalflux/vitalflux/widget"
)

// stubGenerator returns a fixed config or error; block, when set, holds the
// generation open until released.
type stubGenerator struct {
	cfg     widget.Config
	err     error
	block   chan struct{}
	started chan struct{}
}

func (g *stubGenerator) Generate(ctx context.Context, _ string) (widget.Config, error) {
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return widget.Config{}, ctx.Err()
		}
	}
	return g.cfg, g.err
}

func patientsConfig() widget.Config {
	return widget.Config{
		ChartType: widget.ChartColumn,
		Title:     "Number of Patients by Program",
		DataOptions: widget.DataOptions{
			Category: []string{"DM.vitalflux_patients_csv.program"},
			Value:    []string{"measureFactory.count(DM.vitalflux_patients_csv.patient_id, 'Total Patients')"},
		},
	}
}

func newTestServer(gen Generator) (*Server, *httptest.Server) {
	s := New(Config{Registry: schema.VitalFlux(), Generator: gen})
	return s, httptest.NewServer(s.Routes())
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestChatCreatesWidget(t *testing.T) {
	_, ts := newTestServer(&stubGenerator{cfg: patientsConfig()})
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/chat", chatRequest{Text: "patients per program"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[chatResponse](t, resp)

	assert.NotEmpty(t, body.SessionID, "server assigns a session when none is given")
	assert.Empty(t, body.Error)
	assert.Contains(t, body.Reply, "Number of Patients by Program")
	require.NotNil(t, body.Widget)
	assert.NotEmpty(t, body.Widget.ID)

	// The widget is listed afterwards.
	listResp, err := http.Get(ts.URL + "/api/widgets/")
	require.NoError(t, err)
	list := decodeBody[struct {
		Widgets []StoredWidget `json:"widgets"`
	}](t, listResp)
	require.Len(t, list.Widgets, 1)
	assert.Equal(t, body.Widget.ID, list.Widgets[0].ID)
}

func TestChatRejectsEmptyText(t *testing.T) {
	_, ts := newTestServer(&stubGenerator{})
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/chat", chatRequest{Text: ""})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatSurfacesGatewayMessage(t *testing.T) {
	gen := &stubGenerator{err: &gateway.Error{Message: "Chart type \"sankey\" is not supported."}}
	_, ts := newTestServer(gen)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/chat", chatRequest{Text: "sankey please"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "chat failures are conversation turns, not HTTP errors")
	body := decodeBody[chatResponse](t, resp)

	assert.Equal(t, body.Error, body.Reply)
	assert.Contains(t, body.Error, "sankey")
	assert.Nil(t, body.Widget)
}

func TestChatSessionSingleFlight(t *testing.T) {
	gen := &stubGenerator{
		cfg:     patientsConfig(),
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	_, ts := newTestServer(gen)
	defer ts.Close()

	first := make(chan *http.Response, 1)
	go func() {
		first <- postJSON(t, ts.URL+"/api/chat", chatRequest{SessionID: "s1", Text: "one"})
	}()
	<-gen.started

	// Same session: rejected while the first generation is outstanding.
	resp := postJSON(t, ts.URL+"/api/chat", chatRequest{SessionID: "s1", Text: "two"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// A different session is unaffected by s1's in-flight generation.
	second := make(chan *http.Response, 1)
	go func() {
		second <- postJSON(t, ts.URL+"/api/chat", chatRequest{SessionID: "s2", Text: "three"})
	}()
	<-gen.started

	close(gen.block)
	for _, ch := range []chan *http.Response{first, second} {
		resp = <-ch
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// The session is free again once the generation resolves.
	require.Eventually(t, func() bool {
		r := postJSON(t, ts.URL+"/api/chat", chatRequest{SessionID: "s1", Text: "four"})
		defer r.Body.Close()
		io.Copy(io.Discard, r.Body)
		return r.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestWidgetLifecycle(t *testing.T) {
	s, ts := newTestServer(&stubGenerator{})
	defer ts.Close()

	stored := s.store.Add(patientsConfig())

	resp, err := http.Get(ts.URL + "/api/widgets/" + stored.ID)
	require.NoError(t, err)
	got := decodeBody[StoredWidget](t, resp)
	assert.Equal(t, stored.Config, got.Config)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/widgets/"+stored.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/widgets/" + stored.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBindings(t *testing.T) {
	s, ts := newTestServer(&stubGenerator{})
	defer ts.Close()

	stored := s.store.Add(patientsConfig())

	resp, err := http.Get(fmt.Sprintf("%s/api/widgets/%s/bindings", ts.URL, stored.ID))
	require.NoError(t, err)
	body := decodeBody[bindingResponse](t, resp)

	require.True(t, body.Ready)
	assert.Empty(t, body.Placeholder)
	require.NotNil(t, body.Binding)
	require.Len(t, body.Binding.Value, 1)
	assert.Equal(t, "Total Patients", body.Binding.Value[0].Measure.Title)
	assert.Equal(t, "VitalFlux", body.Binding.DataSource)
}

func TestBindingsPlaceholder(t *testing.T) {
	s, ts := newTestServer(&stubGenerator{})
	defer ts.Close()

	// No resolvable value entries: the widget exists but is not yet ready.
	stored := s.store.Add(widget.Config{
		ChartType: widget.ChartBar,
		Title:     "Pending",
		DataOptions: widget.DataOptions{
			Value: []string{"measureFactory.count(DM.vitalflux_patients_csv.nonexistent)"},
		},
	})

	resp, err := http.Get(fmt.Sprintf("%s/api/widgets/%s/bindings", ts.URL, stored.ID))
	require.NoError(t, err)
	body := decodeBody[bindingResponse](t, resp)

	assert.False(t, body.Ready)
	assert.Equal(t, resolve.PlaceholderMessage, body.Placeholder)
	assert.Nil(t, body.Binding)
}

func TestSetStyleFlowsIntoBindings(t *testing.T) {
	s, ts := newTestServer(&stubGenerator{})
	defer ts.Close()

	stored := s.store.Add(patientsConfig())

	req, _ := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/widgets/%s/style", ts.URL, stored.ID),
		bytes.NewReader([]byte(`{"color": "#1eb564"}`)))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	updated := decodeBody[StoredWidget](t, resp)
	assert.Equal(t, "#1eb564", updated.Color)
	assert.Equal(t, stored.Config, updated.Config, "styling never touches the config")

	resp, err = http.Get(fmt.Sprintf("%s/api/widgets/%s/bindings", ts.URL, stored.ID))
	require.NoError(t, err)
	body := decodeBody[bindingResponse](t, resp)
	require.True(t, body.Ready)
	assert.Equal(t, "#1eb564", body.Binding.Value[0].Color)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(&stubGenerator{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStoreListOrderAndDelete(t *testing.T) {
	st := NewStore()
	a := st.Add(patientsConfig())
	b := st.Add(patientsConfig())
	c := st.Add(patientsConfig())

	ids := func() []string {
		var out []string
		for _, w := range st.List() {
			out = append(out, w.ID)
		}
		return out
	}
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids())

	require.True(t, st.Delete(b.ID))
	assert.False(t, st.Delete(b.ID))
	assert.Equal(t, []string{a.ID, c.ID}, ids())
}
