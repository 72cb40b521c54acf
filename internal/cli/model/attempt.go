package model

// Attempt — локальная запись о проверке голоса или VAD.
type Attempt struct {
	ID         string
	Kind       string // "verify" | "detect"
	Success    bool
	Similarity float64
	Message    string
	CreatedAt  int64 // unix millis
}

const (
	KindVerify = "verify"
	KindDetect = "detect"
)
