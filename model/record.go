package model

// AnnotatedWord is a single word inside a tag annotation, with its position
// in the sentence and its part of speech.
type AnnotatedWord struct {
	Word         string `json:"word"`
	Index        int    `json:"word_index"`
	PartOfSpeech string `json:"part_of_speech"`
}

// TagAnnotation marks a span of a sentence with one fine-grained grammar
// tag. Detail carries the annotator's free-text refinement of the tag
// (e.g. "simple past, third person singular") and is used by preset
// refinement patterns.
type TagAnnotation struct {
	TagID  string          `json:"tag_id"`
	Detail string          `json:"detail,omitempty"`
	Words  []AnnotatedWord `json:"words,omitempty"`
}

// SentenceRecord is one annotated sentence from the upstream corpus.
// Metadata fields are opaque to the merge pipeline and pass through
// relabeling unchanged.
type SentenceRecord struct {
	ID          string            `json:"id,omitempty"`
	Sentence    string            `json:"sentence"`
	Annotations []TagAnnotation   `json:"annotations"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// LabeledAnnotation is a TagAnnotation after strategy application: the
// fine-grained tag has been replaced by its merged category label. The
// original tag ID is kept for audit.
type LabeledAnnotation struct {
	Category string          `json:"category"`
	TagID    string          `json:"tag_id"`
	Detail   string          `json:"detail,omitempty"`
	Words    []AnnotatedWord `json:"words,omitempty"`
}

// LabeledRecord is the relabeled form of a SentenceRecord, plus the three
// formatted analysis strings consumed by the fine-tuning dataset writer.
type LabeledRecord struct {
	ID          string              `json:"id,omitempty"`
	Sentence    string              `json:"sentence"`
	Annotations []LabeledAnnotation `json:"annotations"`
	Metadata    map[string]string   `json:"metadata,omitempty"`
	Chunks      string              `json:"chunks"`
	POSTags     string              `json:"pos_tags"`
	Roles       string              `json:"grammatical_roles"`
}
