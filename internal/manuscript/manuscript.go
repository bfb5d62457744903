// Package manuscript defines the input data model supplied by the book
// creation workflow and normalizes its loosely-formatted text into typed
// text runs.
package manuscript

// Metadata holds the book-level identity fields supplied by the caller.
type Metadata struct {
	AuthorName string   `json:"authorName"`
	BookTitle  string   `json:"bookTitle"`
	SubTitle   string   `json:"subTitle"`
	Contact    *Contact `json:"contact,omitempty"`
}

// Contact identifies the author's social handle, used for the printed QR code.
type Contact struct {
	Name string `json:"name"`
}

// Chapter is one ordered unit of body content.
type Chapter struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Marketing carries promotional copy produced alongside the manuscript.
// The assembly engine passes it through untouched; it is consumed by the
// distribution workflow, not by document packaging.
type Marketing struct {
	BackCoverCopy string   `json:"backCoverCopy,omitempty"`
	Category      string   `json:"category,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// Content holds the ordered manuscript body plus optional front and back
// matter text. Any optional field may be empty; the engine substitutes
// placeholder paragraphs so the physical pages still exist.
type Content struct {
	Introduction    string    `json:"introduction"`
	Chapters        []Chapter `json:"chapters"`
	Conclusion      string    `json:"conclusion"`
	Dedication      string    `json:"dedication"`
	Acknowledgments string    `json:"acknowledgments"`
	AboutAuthor     string    `json:"aboutAuthor,omitempty"`
	Marketing       Marketing `json:"marketing"`
}

// Run is an atomic span of text sharing one formatting state.
type Run struct {
	Text string
	Bold bool
}
