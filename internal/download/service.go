package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/video-library/internal/model"
	"github.com/ytget/video-library/internal/platform"
)

// Parallelism bounds for SetMaxParallelDownloads
const (
	MinParallelDownloads = 1
	MaxParallelDownloads = 10
)

// ErrTaskExists is returned when an unfinished task already targets the URL
var ErrTaskExists = errors.New("task already exists")

// Manager runs download tasks under a parallelism limit
type Manager struct {
	tasks       map[string]*model.DownloadTask
	order       []string // insertion order, used to pick the next pending task
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	downloadDir string
	client      *http.Client
	options     []Option
	onUpdate    func(*model.DownloadTask) // callback for UI updates
	wg          sync.WaitGroup
}

// NewManager creates a new download manager
func NewManager(client *http.Client, downloadDir string, maxParallel int, opts ...Option) *Manager {
	return &Manager{
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		maxParallel: clampParallel(maxParallel),
		downloadDir: downloadDir,
		client:      client,
		options:     opts,
	}
}

// SetUpdateCallback sets the callback function for task updates.
// The callback receives a snapshot and may be called from any goroutine.
func (m *Manager) SetUpdateCallback(callback func(*model.DownloadTask)) {
	m.tasksMutex.Lock()
	defer m.tasksMutex.Unlock()
	m.onUpdate = callback
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (m *Manager) SetMaxParallelDownloads(max int) {
	m.tasksMutex.Lock()
	m.maxParallel = clampParallel(max)
	m.tasksMutex.Unlock()

	m.startPendingTasks()
}

// SetDownloadDirectory sets the directory used by tasks started afterwards
func (m *Manager) SetDownloadDirectory(dir string) {
	m.tasksMutex.Lock()
	defer m.tasksMutex.Unlock()
	m.downloadDir = dir
}

// AddTask queues a download of url saved as fileName
func (m *Manager) AddTask(url, fileName string) (*model.DownloadTask, error) {
	if url == "" {
		return nil, errors.New("url is empty")
	}

	m.tasksMutex.Lock()
	for _, task := range m.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			m.tasksMutex.Unlock()
			return nil, fmt.Errorf("%w for URL: %s", ErrTaskExists, platform.RedactURL(url))
		}
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       url,
		FileName:  fileName,
		Status:    model.TaskStatusPending,
		Progress:  model.IdleProgress(),
		StartedAt: time.Now(),
	}
	m.tasks[task.ID] = task
	m.order = append(m.order, task.ID)
	snapshot := task.Snapshot()
	m.tasksMutex.Unlock()

	m.notifyUpdate(snapshot)
	m.startPendingTasks()
	return snapshot, nil
}

// GetTask returns a snapshot of a task by ID
func (m *Manager) GetTask(id string) (*model.DownloadTask, bool) {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()
	task, exists := m.tasks[id]
	if !exists {
		return nil, false
	}
	return task.Snapshot(), true
}

// GetAllTasks returns snapshots of all tasks in insertion order
func (m *Manager) GetAllTasks() []*model.DownloadTask {
	m.tasksMutex.RLock()
	defer m.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(m.order))
	for _, id := range m.order {
		if task, ok := m.tasks[id]; ok {
			tasks = append(tasks, task.Snapshot())
		}
	}
	return tasks
}

// StopTask cancels a pending or running task
func (m *Manager) StopTask(id string) error {
	m.tasksMutex.Lock()
	task, exists := m.tasks[id]
	if !exists {
		m.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}

	switch {
	case task.Status == model.TaskStatusPending:
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
	case task.Status.IsActive():
		task.Status = model.TaskStatusStopping
		if cancel, ok := m.cancels[id]; ok {
			cancel()
		}
	default:
		m.tasksMutex.Unlock()
		return fmt.Errorf("task is not active: %s", task.Status)
	}
	snapshot := task.Snapshot()
	m.tasksMutex.Unlock()

	m.notifyUpdate(snapshot)
	return nil
}

// RemoveTask cancels the task if needed and forgets it
func (m *Manager) RemoveTask(id string) error {
	m.tasksMutex.Lock()
	defer m.tasksMutex.Unlock()

	if _, exists := m.tasks[id]; !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if cancel, ok := m.cancels[id]; ok {
		cancel()
	}
	delete(m.tasks, id)
	for i, tid := range m.order {
		if tid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Wait blocks until every started task has finished
func (m *Manager) Wait() {
	m.wg.Wait()
}

// startPendingTasks fills free slots with pending tasks in queue order
func (m *Manager) startPendingTasks() {
	m.tasksMutex.Lock()
	defer m.tasksMutex.Unlock()

	for _, id := range m.order {
		if m.activeCount >= m.maxParallel {
			return
		}
		task := m.tasks[id]
		if task.Status != model.TaskStatusPending {
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())
		m.cancels[id] = cancel
		m.activeCount++
		task.Status = model.TaskStatusStarting

		m.wg.Add(1)
		go m.runTask(ctx, task, m.downloadDir)
	}
}

// runTask downloads a task whose slot was reserved by startPendingTasks
func (m *Manager) runTask(ctx context.Context, task *model.DownloadTask, dir string) {
	defer m.wg.Done()

	m.tasksMutex.RLock()
	snapshot := task.Snapshot()
	m.tasksMutex.RUnlock()
	m.notifyUpdate(snapshot)

	log.Printf("Starting download task %s: %s", task.ID, task.GetDisplayTitle())

	saver := &statusSaver{
		Saver: NewFileSaver(dir),
		onSave: func() {
			m.setStatus(task, model.TaskStatusSaving)
		},
	}
	dl := New(m.client, saver, m.options...)

	path, err := dl.Download(ctx, task.URL, task.FileName, func(p model.Progress) {
		m.updateTaskProgress(task, p)
	})

	m.tasksMutex.Lock()
	if err != nil {
		if ctx.Err() != nil {
			task.Status = model.TaskStatusStopped
			log.Printf("Download task %s stopped", task.ID)
		} else {
			task.Status = model.TaskStatusError
			task.LastError = err.Error()
			log.Printf("Download task %s failed: %v", task.ID, err)
		}
	} else {
		task.Status = model.TaskStatusCompleted
		task.OutputPath = path
		if task.Progress.Total > 0 {
			task.Progress.Percent = 100
			task.Progress.ETASec = 0
		}
		log.Printf("Download task %s saved to %s", task.ID, path)
	}
	task.Progress.Active = false
	task.FinishedAt = time.Now()
	if cancel, ok := m.cancels[task.ID]; ok {
		cancel()
		delete(m.cancels, task.ID)
	}
	m.activeCount--
	snapshot = task.Snapshot()
	m.tasksMutex.Unlock()

	m.notifyUpdate(snapshot)
	m.startPendingTasks()
}

// updateTaskProgress stores an active progress snapshot on the task.
// The idle snapshot emitted when a session closes is not stored, so a
// finished task keeps its last observed values.
func (m *Manager) updateTaskProgress(task *model.DownloadTask, p model.Progress) {
	if !p.Active {
		return
	}

	m.tasksMutex.Lock()
	task.Progress = p
	if task.Status == model.TaskStatusStarting {
		task.Status = model.TaskStatusDownloading
	}
	snapshot := task.Snapshot()
	m.tasksMutex.Unlock()

	m.notifyUpdate(snapshot)
}

func (m *Manager) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	m.tasksMutex.Lock()
	if task.Status.IsActive() && task.Status != model.TaskStatusStopping {
		task.Status = status
	}
	snapshot := task.Snapshot()
	m.tasksMutex.Unlock()

	m.notifyUpdate(snapshot)
}

// notifyUpdate calls the update callback if set
func (m *Manager) notifyUpdate(task *model.DownloadTask) {
	m.tasksMutex.RLock()
	callback := m.onUpdate
	m.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}

// statusSaver reports the transition into the saving phase
type statusSaver struct {
	Saver
	onSave func()
}

func (s *statusSaver) Save(ctx context.Context, fileName string, payload []byte) (string, error) {
	s.onSave()
	return s.Saver.Save(ctx, fileName, payload)
}

func clampParallel(n int) int {
	if n < MinParallelDownloads {
		return MinParallelDownloads
	}
	if n > MaxParallelDownloads {
		return MaxParallelDownloads
	}
	return n
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "task-" + uuid.NewString()
	}
	return "task-" + id.String()
}
