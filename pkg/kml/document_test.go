package kml

import "testing"

func TestNewDocumentValidation(t *testing.T) {
	root := mustParse(t, `<kml><Document/></kml>`)

	if _, err := NewDocument(nil, root); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceFromBytes("x.kml", nil), nil); err == nil {
		t.Fatalf("expected error for nil root")
	}
	if _, err := NewDocument(SourceFromBytes("x.kml", nil), root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMustNewDocumentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid document")
		}
	}()
	MustNewDocument(nil, nil)
}

func TestFeaturesWalksContainers(t *testing.T) {
	doc := MustNewDocument(
		SourceFromBytes("layers.kml", nil),
		mustParse(t, `
<kml>
  <Document>
    <Placemark id="a"/>
    <Folder>
      <name>zone</name>
      <Placemark id="b"/>
      <Folder>
        <Placemark id="c"/>
      </Folder>
    </Folder>
    <Placemark id="d"/>
  </Document>
</kml>`),
	)

	features := doc.Features()
	if len(features) != 4 {
		t.Fatalf("expected 4 placemarks, got %d", len(features))
	}
	order := []string{"a", "b", "c", "d"}
	for i, want := range order {
		if features[i].ID() != want {
			t.Fatalf("feature %d: expected id %q, got %q", i, want, features[i].ID())
		}
	}
}

func TestRootUnwrapsEnvelope(t *testing.T) {
	doc := MustNewDocument(
		SourceFromBytes("wrap.kml", nil),
		mustParse(t, `<kml><Document><name>inner</name></Document></kml>`),
	)
	if doc.Root().Name() != "Document" {
		t.Fatalf("expected Document root, got %q", doc.Root().Name())
	}

	bare := MustNewDocument(
		SourceFromBytes("bare.kml", nil),
		mustParse(t, `<Placemark id="only"/>`),
	)
	if bare.Root().Name() != "Placemark" {
		t.Fatalf("expected Placemark root, got %q", bare.Root().Name())
	}
}

func TestSourceKinds(t *testing.T) {
	if SourceFromFile("a/b.kml").Kind() != SourceKindFile {
		t.Fatalf("file source kind mismatch")
	}
	if SourceFromFS("b.kml").Kind() != SourceKindFS {
		t.Fatalf("fs source kind mismatch")
	}
	if SourceFromURL("https://example.com/x.kml").Kind() != SourceKindURL {
		t.Fatalf("url source kind mismatch")
	}
	if SourceFromBytes("x", nil).Kind() != SourceKindBytes {
		t.Fatalf("bytes source kind mismatch")
	}
}

func TestSourceFromURLPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid URL")
		}
	}()
	SourceFromURL("://not-a-url")
}
