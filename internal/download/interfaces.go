package download

import "github.com/ytget/video-library/internal/model"

// TaskManager is the surface the UI uses to drive downloads
type TaskManager interface {
	SetUpdateCallback(func(*model.DownloadTask))
	AddTask(url, fileName string) (*model.DownloadTask, error)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	StopTask(id string) error
	RemoveTask(id string) error

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)
}

var _ TaskManager = (*Manager)(nil)
