package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testTree returns:
//
//	page
//	  heading level=1 "Title"
//	  bulleted_list "item"
//	    paragraph "nested"
//	  divider
//	  paragraph "end"
func testTree() *Node {
	heading, err := Heading(1, Text("Title"))
	if err != nil {
		panic(err)
	}
	return Page(
		heading,
		BulletedList(Text("item"), Paragraph(Text("nested"))),
		Divider(),
		Paragraph(Text("end")),
	)
}

func requireTreeEqual(t *testing.T, expected, got *Node) {
	t.Helper()
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}
