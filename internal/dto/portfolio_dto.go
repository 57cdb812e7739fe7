package dto

// PortfolioItemRequest records one piece of student work. URL may point at an
// external resource or be filled in by an artifact upload.
type PortfolioItemRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Subject   string `json:"subject" validate:"max=60"`
	URL       string `json:"url" validate:"omitempty,url"`
	Notes     string `json:"notes"`
}

// ArtifactUploadResult describes a stored artifact file.
type ArtifactUploadResult struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Bytes  int64  `json:"bytes"`
}
