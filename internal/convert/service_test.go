package convert_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/convert"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

const fixtureManifest = `<?xml version="1.0"?>
<manifest xmlns="http://www.imsglobal.org/xsd/imscp_v1p1">
  <resources>
    <resource identifier="quiz-ok" type="imsqti_xmlv1p2" href="quiz-ok.xml">
      <title>Working Quiz</title>
      <file href="quiz-ok.xml"/>
    </resource>
    <resource identifier="quiz-gone" type="imsqti_xmlv1p2" href="nope.xml">
      <title>Missing Quiz</title>
    </resource>
    <resource identifier="quiz-odd" type="imsqti_xmlv2p1" href="odd.xml">
      <title>Odd Quiz</title>
    </resource>
    <resource identifier="page" type="webcontent" href="page.html"/>
  </resources>
</manifest>`

const fixtureLegacyQuiz = `<?xml version="1.0"?>
<questestinterop>
  <assessment ident="a1" title="Working Quiz">
    <item ident="q1">
      <itemmetadata><qtimetadata><qtimetadatafield>
        <fieldlabel>question_type</fieldlabel>
        <fieldentry>multiple_choice_question</fieldentry>
      </qtimetadatafield></qtimetadata></itemmetadata>
      <presentation>
        <material><mattext>2+2?</mattext></material>
        <render_choice>
          <response_label ident="A"><material><mattext>3</mattext></material></response_label>
          <response_label ident="B"><material><mattext>4</mattext></material></response_label>
        </render_choice>
      </presentation>
      <resprocessing>
        <respcondition><conditionvar><varequal>B</varequal></conditionvar></respcondition>
      </resprocessing>
    </item>
  </assessment>
</questestinterop>`

// body root nobody supports; placeholder, run continues
const fixtureOddQuiz = `<survey><q>anything</q></survey>`

func fixtureZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// entry order matters: the walk order, and with it the tier-3 scan and
	// manifest tie-break, follow it
	entries := []struct{ name, body string }{
		{"imsmanifest.xml", fixtureManifest},
		{"quiz-ok.xml", fixtureLegacyQuiz},
		{"odd.xml", fixtureOddQuiz},
		{"page.html", "<html/>"},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newService(t *testing.T) (*convert.Service, string) {
	t.Helper()
	wsPath := filepath.Join(t.TempDir(), "workspace")
	return convert.New(storage.NewWorkspace(wsPath), nil), wsPath
}

func TestConvert_EndToEnd(t *testing.T) {
	svc, wsPath := newService(t)

	res, err := svc.Convert(context.Background(), fixtureZip(t))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if len(res.Quizzes) != 3 {
		t.Fatalf("quizzes = %d, want 3 (webcontent excluded)", len(res.Quizzes))
	}

	ok := res.Quizzes[0]
	if ok.Title != "Working Quiz" || len(ok.Questions) != 1 {
		t.Errorf("first quiz = %+v", ok)
	}
	if v, has := ok.Questions[0].Correct.Value(); !has || v != "B" {
		t.Errorf("correct = %+v", ok.Questions[0].Correct)
	}

	// the dead href falls through to the tier-3 scan, which lands on the
	// manifest itself (it mentions the identifier); the manifest is no quiz
	// body, so the resource degrades to a titled placeholder
	gone := res.Quizzes[1]
	if gone.Title != "Missing Quiz" || len(gone.Questions) != 0 {
		t.Errorf("placeholder quiz = %+v", gone)
	}
	if res.Outcomes[1].Kind != convert.KindUnsupportedFormat || !res.Outcomes[1].Placeholder {
		t.Errorf("outcome = %+v", res.Outcomes[1])
	}

	// unsupported root likewise
	if res.Outcomes[2].Kind != convert.KindUnsupportedFormat {
		t.Errorf("outcome = %+v", res.Outcomes[2])
	}

	// scoped workspace released on the success path
	if _, err := os.Stat(wsPath); !os.IsNotExist(err) {
		t.Errorf("workspace %s still exists", wsPath)
	}
}

func TestConvert_ManifestMissingIsFatalAndReleasesWorkspace(t *testing.T) {
	svc, wsPath := newService(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("readme.txt")
	_, _ = w.Write([]byte("no manifest here"))
	_ = zw.Close()

	_, err := svc.Convert(context.Background(), buf.Bytes())
	kind, ok := convert.KindOf(err)
	if !ok || kind != convert.KindManifestNotFound {
		t.Fatalf("err = %v, want MANIFEST_NOT_FOUND", err)
	}
	if _, err := os.Stat(wsPath); !os.IsNotExist(err) {
		t.Errorf("workspace %s left behind after failure", wsPath)
	}
}

func TestConvert_GarbageBlobIsExtractionError(t *testing.T) {
	svc, wsPath := newService(t)
	_, err := svc.Convert(context.Background(), []byte("definitely not a zip"))
	kind, ok := convert.KindOf(err)
	if !ok || kind != convert.KindExtraction {
		t.Fatalf("err = %v, want EXTRACTION_ERROR", err)
	}
	if _, err := os.Stat(wsPath); !os.IsNotExist(err) {
		t.Errorf("workspace %s left behind after failure", wsPath)
	}
}

func TestConvert_ZeroQuizResourcesIsEmptyNotError(t *testing.T) {
	svc, _ := newService(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("imsmanifest.xml")
	_, _ = w.Write([]byte(`<manifest xmlns="http://www.imsglobal.org/xsd/imscp_v1p1"><resources><resource identifier="p" type="webcontent"/></resources></manifest>`))
	_ = zw.Close()

	res, err := svc.Convert(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(res.Quizzes) != 0 || len(res.Outcomes) != 0 {
		t.Fatalf("result = %+v, want empty", res)
	}
}

func TestConvert_UnparsableBodyIsContentParseError(t *testing.T) {
	svc, _ := newService(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct{ name, body string }{
		{"imsmanifest.xml", `<manifest xmlns="http://www.imsglobal.org/xsd/imscp_v1p1"><resources>
      <resource identifier="quiz-broken" type="imsqti_xmlv1p2" href="broken.xml"><title>Broken Quiz</title></resource>
    </resources></manifest>`},
		// resolvable via href but truncated mid-document
		{"broken.xml", `<questestinterop><assessment ident="a1" title="Broken Quiz"><item ident="q1">`},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Convert(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(res.Quizzes) != 1 || res.Quizzes[0].Title != "Broken Quiz" || len(res.Quizzes[0].Questions) != 0 {
		t.Fatalf("quizzes = %+v, want one titled placeholder", res.Quizzes)
	}
	out := res.Outcomes[0]
	if out.Kind != convert.KindContentParse || !out.Placeholder || out.Detail == "" {
		t.Fatalf("outcome = %+v, want CONTENT_PARSE_ERROR placeholder with detail", out)
	}
}

func TestConvert_CanceledContextAborts(t *testing.T) {
	svc, wsPath := newService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Convert(ctx, fixtureZip(t))
	if err == nil {
		t.Fatal("want an error from a canceled context")
	}
	if _, ok := convert.KindOf(err); ok {
		t.Fatalf("err = %v, cancellation must not be classified", err)
	}
	// canceled before acquire, so nothing to release
	if _, err := os.Stat(wsPath); !os.IsNotExist(err) {
		t.Errorf("workspace %s should never have been created", wsPath)
	}
}
