package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima-gfx/engine/assets/loaders"
	"github.com/spaghettifunk/anima-gfx/engine/containers"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/renderer/graphics"
)

const pendingReloadCapacity = 64

// ShaderReloader is the part of the graphics context the watcher drives.
type ShaderReloader interface {
	ReloadVertexProgram(h graphics.HVertexProgram, source []byte) bool
	ReloadFragmentProgram(h graphics.HFragmentProgram, source []byte) bool
}

// ShaderWatcher reloads shader programs when their source files change on
// disk. File events arrive on a background goroutine and are only queued;
// the reload itself happens in Poll, on the thread that owns the context.
type ShaderWatcher struct {
	reloader ShaderReloader
	loader   loaders.ShaderLoader

	mutex      sync.Mutex
	vertex     map[string]graphics.HVertexProgram
	fragment   map[string]graphics.HFragmentProgram
	pending    *containers.RingQueue[string]
	pendingSet map[string]struct{}

	fsnotify *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	isClosed bool
}

func NewShaderWatcher(reloader ShaderReloader) (*ShaderWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ShaderWatcher{
		reloader:   reloader,
		vertex:     make(map[string]graphics.HVertexProgram),
		fragment:   make(map[string]graphics.HFragmentProgram),
		pending:    containers.NewRingQueue[string](pendingReloadCapacity),
		pendingSet: make(map[string]struct{}),
		fsnotify:   fsWatch,
		done:       make(chan struct{}),
	}, nil
}

// Initialize starts watching dir and every directory below it.
func (sw *ShaderWatcher) Initialize(dir string) error {
	if sw.isClosed {
		return errors.New("shader watcher already closed")
	}
	if err := sw.watchRecursive(dir); err != nil {
		return err
	}
	sw.wg.Add(1)
	go sw.start()
	return nil
}

// WatchVertexProgram binds a vertex program to its source file.
func (sw *ShaderWatcher) WatchVertexProgram(path string, h graphics.HVertexProgram) {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	sw.vertex[canonicalPath(path)] = h
}

// WatchFragmentProgram binds a fragment program to its source file.
func (sw *ShaderWatcher) WatchFragmentProgram(path string, h graphics.HFragmentProgram) {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	sw.fragment[canonicalPath(path)] = h
}

// Unwatch forgets whatever program was bound to path.
func (sw *ShaderWatcher) Unwatch(path string) {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	p := canonicalPath(path)
	delete(sw.vertex, p)
	delete(sw.fragment, p)
}

// Poll applies the queued reloads and returns how many programs reloaded
// successfully. Call it once per frame from the render thread.
func (sw *ShaderWatcher) Poll() int {
	sw.mutex.Lock()
	paths := make([]string, 0, sw.pending.Len())
	for !sw.pending.IsEmpty() {
		p, _ := sw.pending.Dequeue()
		delete(sw.pendingSet, p)
		paths = append(paths, p)
	}
	sw.mutex.Unlock()

	reloaded := 0
	for _, p := range paths {
		if sw.reload(p) {
			reloaded++
		}
	}
	return reloaded
}

// Close stops the watcher goroutine. Pending reloads are dropped.
func (sw *ShaderWatcher) Close() error {
	if sw.isClosed {
		return nil
	}
	sw.isClosed = true
	close(sw.done)
	sw.wg.Wait()
	return sw.fsnotify.Close()
}

func (sw *ShaderWatcher) reload(path string) bool {
	sw.mutex.Lock()
	vp, isVertex := sw.vertex[path]
	fp, isFragment := sw.fragment[path]
	sw.mutex.Unlock()
	if !isVertex && !isFragment {
		return false
	}

	source, err := sw.loader.Load(path)
	if err != nil {
		core.LogWarn("failed to read shader %s: %s", path, err)
		return false
	}

	var ok bool
	if isVertex {
		ok = sw.reloader.ReloadVertexProgram(vp, source)
	} else {
		ok = sw.reloader.ReloadFragmentProgram(fp, source)
	}
	if !ok {
		core.LogWarn("failed to reload shader %s", path)
		return false
	}
	core.LogInfo("reloaded shader %s", path)
	return true
}

// enqueue records a changed file. Repeated writes before the next Poll
// collapse into a single reload.
func (sw *ShaderWatcher) enqueue(path string) {
	if loaders.ShaderStageOf(path) == loaders.ShaderStageNone {
		return
	}
	p := canonicalPath(path)

	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	if _, queued := sw.pendingSet[p]; queued {
		return
	}
	if err := sw.pending.Enqueue(p); err != nil {
		core.LogWarn("dropping shader reload for %s: %s", p, err)
		return
	}
	sw.pendingSet[p] = struct{}{}
}

func (sw *ShaderWatcher) start() {
	defer sw.wg.Done()
	for {
		select {
		case e, ok := <-sw.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := sw.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Editors often save by renaming a temp file over the original.
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				sw.enqueue(e.Name)
			}

		case err, ok := <-sw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-sw.done:
			return
		}
	}
}

func (sw *ShaderWatcher) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return sw.fsnotify.Add(walkPath)
		}
		return nil
	})
}

func canonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
