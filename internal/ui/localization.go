package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySubtitle          = "subtitle"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyBucket            = "bucket"
	KeyRegion            = "region"
	KeyThumbnailTimeout  = "thumbnail_timeout"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterPassword     = "enter_password"
	KeySearch            = "search"
	KeyGrid              = "grid"
	KeyList              = "list"
	KeyPasswordPrompt    = "password_prompt"
	KeyLoading           = "loading"
	KeyNoVideos          = "no_videos"
	KeyNoVideosHint      = "no_videos_hint"
	KeyVideoCount        = "video_count"
	KeyErrorPrefix       = "error_prefix"
	KeyDownloadFailed    = "download_failed"
	KeyDownloadCompleted = "download_completed"
	KeyNoPreview         = "no_preview"
	KeySizeUnknown       = "size_unknown"
	KeyETA               = "eta"
	KeyBucketNotSet      = "bucket_not_set"
	KeySettingsSaved     = "settings_saved"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyStatusPending     = "status_pending"
	KeyStatusSaving      = "status_saving"
	KeyStatusStopped     = "status_stopped"
	KeyOpenFile          = "open_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ja": "日本語",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Video Library",
		KeySubtitle:          "Enter the password to browse and download",
		KeyDownload:          "Download",
		KeyStop:              "Stop",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyMaxParallel:       "Max Parallel Downloads",
		KeyBucket:            "S3 Bucket",
		KeyRegion:            "S3 Region",
		KeyThumbnailTimeout:  "Thumbnail Timeout (seconds)",
		KeyAutoReveal:        "Reveal saved files",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterPassword:     "Password",
		KeySearch:            "Search videos...",
		KeyGrid:              "Grid",
		KeyList:              "List",
		KeyPasswordPrompt:    "Please enter the password",
		KeyLoading:           "Loading...",
		KeyNoVideos:          "No videos found",
		KeyNoVideosHint:      "Try a different search",
		KeyVideoCount:        "%d videos",
		KeyErrorPrefix:       "Error: ",
		KeyDownloadFailed:    "Download failed",
		KeyDownloadCompleted: "Download completed",
		KeyNoPreview:         "No preview",
		KeySizeUnknown:       "size unknown",
		KeyETA:               "ETA",
		KeyBucketNotSet:      "Set the S3 bucket in Settings first",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyAlreadyInQueue:    "Already downloading",
		KeyStatusPending:     "Waiting",
		KeyStatusSaving:      "Saving...",
		KeyStatusStopped:     "Stopped",
		KeyOpenFile:          "Open the file now?",
	}

	l.texts["ja"] = map[string]string{
		KeyAppTitle:          "ビデオライブラリ",
		KeySubtitle:          "パスワードを入力してダウンロード",
		KeyDownload:          "ダウンロード",
		KeyStop:              "停止",
		KeySettings:          "設定",
		KeyFile:              "ファイル",
		KeyLanguage:          "言語",
		KeyDownloadDirectory: "保存先フォルダ",
		KeyMaxParallel:       "同時ダウンロード数",
		KeyBucket:            "S3 バケット",
		KeyRegion:            "S3 リージョン",
		KeyThumbnailTimeout:  "サムネイルのタイムアウト (秒)",
		KeyAutoReveal:        "保存後にフォルダを開く",
		KeySave:              "保存",
		KeyCancel:            "キャンセル",
		KeyBrowse:            "参照",
		KeyEnterPassword:     "パスワードを入力",
		KeySearch:            "動画を検索...",
		KeyGrid:              "グリッド",
		KeyList:              "リスト",
		KeyPasswordPrompt:    "パスワードを入力してください",
		KeyLoading:           "読み込み中...",
		KeyNoVideos:          "動画が見つかりませんでした",
		KeyNoVideosHint:      "検索条件を変更して再度お試しください",
		KeyVideoCount:        "%d 件の動画",
		KeyErrorPrefix:       "エラー: ",
		KeyDownloadFailed:    "ダウンロードに失敗しました",
		KeyDownloadCompleted: "ダウンロードが完了しました",
		KeyNoPreview:         "プレビューなし",
		KeySizeUnknown:       "サイズ不明",
		KeyETA:               "残り",
		KeyBucketNotSet:      "先に設定で S3 バケットを指定してください",
		KeySettingsSaved:     "設定を保存しました",
		KeyAlreadyInQueue:    "ダウンロード中です",
		KeyStatusPending:     "待機中",
		KeyStatusSaving:      "保存中...",
		KeyStatusStopped:     "停止しました",
		KeyOpenFile:          "ファイルを開きますか？",
	}
}
