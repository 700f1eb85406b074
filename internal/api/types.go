package api

import "tcreview/internal/domain"

// BatchDetail is a batch together with every test case it owns, in server
// order.
type BatchDetail struct {
	Batch     domain.Batch      `json:"batch"`
	TestCases []domain.TestCase `json:"test_cases"`
}

// UploadRequest describes a document upload that generates a new batch.
type UploadRequest struct {
	Files       []string
	Name        string
	Description string
	CaseCount   int
}

// UploadResult is the batch created from an upload.
type UploadResult struct {
	BatchID   int               `json:"batch_id"`
	BatchName string            `json:"batch_name"`
	TestCases []domain.TestCase `json:"test_cases"`
}

// KnowledgeUpload reports a file accepted by the knowledge base. Batch is the
// token used to poll indexing progress.
type KnowledgeUpload struct {
	Message string `json:"message"`
	Batch   string `json:"batch"`
	File    struct {
		ID       int    `json:"id"`
		FileName string `json:"file_name"`
		FileType string `json:"file_type"`
		FileSize int64  `json:"file_size"`
		Status   string `json:"status"`
	} `json:"file"`
}

// IndexingProgress is the processing state of one uploaded document.
type IndexingProgress struct {
	ID                string                `json:"id"`
	Status            domain.IndexingStatus `json:"indexing_status"`
	CompletedSegments int                   `json:"completed_segments"`
	TotalSegments     int                   `json:"total_segments"`
	Error             string                `json:"error,omitempty"`
}

type reviewResponse struct {
	Message  string          `json:"message"`
	TestCase domain.TestCase `json:"test_case"`
}

type knowledgeListResponse struct {
	Data []knowledgeDocument `json:"data"`
}

type knowledgeDocument struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	DataSourceType   string           `json:"data_source_type"`
	IndexingStatus   string           `json:"indexing_status"`
	CreatedAt        domain.Timestamp `json:"created_at"`
	DataSourceDetail *struct {
		UploadFile *struct {
			Extension string `json:"extension"`
			Size      int64  `json:"size"`
		} `json:"upload_file"`
	} `json:"data_source_detail_dict"`
}

func (d knowledgeDocument) toDomain() domain.KnowledgeFile {
	file := domain.KnowledgeFile{
		ID:             d.ID,
		Name:           d.Name,
		Extension:      "unknown",
		CreatedAt:      d.CreatedAt,
		IndexingStatus: domain.IndexingStatus(d.IndexingStatus),
	}
	if d.DataSourceDetail != nil && d.DataSourceDetail.UploadFile != nil {
		upload := d.DataSourceDetail.UploadFile
		if d.DataSourceType == "upload_file" && upload.Extension != "" {
			file.Extension = upload.Extension
		}
		file.Size = upload.Size
	}
	return file
}

type indexingStatusResponse struct {
	Data []IndexingProgress `json:"data"`
}

// errorBody is the envelope every endpoint uses to report failures.
type errorBody struct {
	Error string `json:"error"`
}
