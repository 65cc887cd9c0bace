package helptext

import (
	"strings"
	"testing"
)

const sample = `# Title

Intro text.

## use

Set the default.

### details

More.

## wait

Poll after changes.
`

func TestParseSections(t *testing.T) {
	doc := Parse([]byte(sample))
	if len(doc.Sections) != 4 {
		t.Fatalf("got %d sections, want 4: %+v", len(doc.Sections), doc.Sections)
	}

	use, ok := doc.Topic("USE")
	if !ok {
		t.Fatal("Topic(USE) not found")
	}
	if !strings.HasPrefix(use.Body, "## use") || !strings.Contains(use.Body, "More.") {
		t.Errorf("use section = %q", use.Body)
	}
	if strings.Contains(use.Body, "Poll") {
		t.Errorf("use section runs into the next one: %q", use.Body)
	}

	if _, ok := doc.Topic("title"); ok {
		t.Error("the document title is not a topic")
	}
	if _, ok := doc.Topic("missing"); ok {
		t.Error("Topic(missing) found something")
	}
	if got := strings.Join(doc.Topics(), ","); got != "use,wait" {
		t.Errorf("Topics() = %q", got)
	}
}

func TestShellDocCoversMetaCommands(t *testing.T) {
	doc, err := Shell()
	if err != nil {
		t.Fatalf("Shell() error = %v", err)
	}
	for _, topic := range []string{"help", "use", "wait", "nowait", "list", "about", "exit"} {
		if _, ok := doc.Topic(topic); !ok {
			t.Errorf("shell help has no %q section", topic)
		}
	}
}

func TestRender(t *testing.T) {
	out := Render("## use\n\nSet the default.\n", 60)
	if !strings.Contains(out, "Set") || !strings.Contains(out, "default") {
		t.Errorf("Render() = %q", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("Render() trailing newlines = %q", out)
	}
}
