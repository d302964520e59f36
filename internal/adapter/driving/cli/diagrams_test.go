package cli_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/tprmkit/internal/adapter/driving/cli"
	"github.com/ericfisherdev/tprmkit/internal/clock"
	"github.com/ericfisherdev/tprmkit/internal/diagram"
)

func TestGenerate_WritesRequestedFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var out, errOut bytes.Buffer

	root := cli.NewDiagramsCommand(cli.DiagramOptions{
		Out:   &out,
		Err:   &errOut,
		Clock: clock.NewFake(time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)),
	})
	root.SetArgs([]string{"generate", "--output-dir", dir, "--format", "html"})

	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(dir, diagram.ViewerFile))
	assert.FileExists(t, filepath.Join(dir, diagram.IndexFile))
	assert.NoDirExists(t, filepath.Join(dir, "mermaid"))

	index, err := os.ReadFile(filepath.Join(dir, diagram.IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Generated: 2026-02-02 10:30")

	assert.Equal(t,
		"Generated 2 files in "+dir+"\n"+
			"Viewer: "+filepath.Join(dir, diagram.ViewerFile)+"\n"+
			"Index: "+filepath.Join(dir, diagram.IndexFile)+"\n",
		out.String())
}

func TestGenerate_MermaidOnly(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	root := cli.NewDiagramsCommand(cli.DiagramOptions{Out: &out, Err: io.Discard})
	root.SetArgs([]string{"generate", "--output-dir", dir, "--format", "mermaid"})

	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(filepath.Join(dir, "mermaid"))
	require.NoError(t, err)
	assert.Len(t, entries, 10)
	assert.NoFileExists(t, filepath.Join(dir, diagram.ViewerFile))
	assert.NotContains(t, out.String(), "Viewer:")
}

func TestGenerate_RejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	root := cli.NewDiagramsCommand(cli.DiagramOptions{Out: io.Discard, Err: io.Discard})
	root.SetArgs([]string{"generate", "--output-dir", dir, "--format", "pdf"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "pdf"`)
	assert.NoFileExists(t, filepath.Join(dir, diagram.IndexFile))
}

func TestServe_ServesViewerUntilCanceled(t *testing.T) {
	addrCh := make(chan net.Addr, 1)
	var errOut bytes.Buffer

	root := cli.NewDiagramsCommand(cli.DiagramOptions{
		Out:       io.Discard,
		Err:       &errOut,
		Listening: func(addr net.Addr) { addrCh <- addr },
	})
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not start listening")
	}

	resp, err := http.Get("http://" + addr.String() + "/mermaid/tprm_lifecycle.mmd")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "%%{ title: TPRM Lifecycle }%%")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not shut down")
	}
	assert.Contains(t, errOut.String(), "shutdown complete")
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	root := cli.NewDiagramsCommand(cli.DiagramOptions{Out: io.Discard, Err: io.Discard})
	root.SetArgs([]string{"serve", "--addr", ln.Addr().String()})

	err = root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}
