package output_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/impdouble/doublegen/run/output"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subject  string
		pkgName  string
		goFile   string
		expected string
	}{
		{name: "regular package", subject: "StoreDouble", pkgName: "store", goFile: "store.go", expected: "generated_StoreDouble.go"},
		{name: "name with .go suffix", subject: "StoreDouble.go", pkgName: "store", goFile: "store.go", expected: "generated_StoreDouble.go"},
		{name: "test package", subject: "StoreDouble", pkgName: "store_test", goFile: "store.go", expected: "generated_StoreDouble_test.go"},
		{name: "test file", subject: "StoreDouble", pkgName: "store", goFile: "store_test.go", expected: "generated_StoreDouble_test.go"},
		{name: "name with _test suffix", subject: "StoreDouble_test", pkgName: "store_test", goFile: "", expected: "generated_StoreDouble_test.go"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(output.Filename(test.subject, test.pkgName, test.goFile)).To(Equal(test.expected))
		})
	}
}

func TestWrite_WritesAndReports(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	writer := newFakeWriter()
	out := &bytes.Buffer{}

	err := output.Write("package store\n\nfunc b() {}\n\nfunc a() {}\n", "StoreDouble", "store", "store.go", writer, out)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(writer.files).To(HaveKey("generated_StoreDouble.go"))
	g.Expect(string(writer.files["generated_StoreDouble.go"])).To(ContainSubstring("func a()"))
	g.Expect(out.String()).To(ContainSubstring("generated_StoreDouble.go written successfully."))
}

func TestWrite_UnparseableCodeIsWrittenWithWarning(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	writer := newFakeWriter()
	out := &bytes.Buffer{}

	err := output.Write("not go", "StoreDouble", "store", "", writer, out)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(writer.files["generated_StoreDouble.go"])).To(Equal("not go"))
	g.Expect(out.String()).To(ContainSubstring("Warning: failed to reorder generated_StoreDouble.go"))
}

func TestWrite_WriterError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	writer := newFakeWriter()
	writer.err = errors.New("disk full")

	err := output.Write("package store\n", "StoreDouble", "store", "", writer, &bytes.Buffer{})
	g.Expect(err).To(MatchError(ContainSubstring("error writing generated_StoreDouble.go: disk full")))
}

// fakeWriter keeps written files in memory.
type fakeWriter struct {
	files map[string][]byte
	err   error
}

func (w *fakeWriter) WriteFile(name string, data []byte, _ os.FileMode) error {
	if w.err != nil {
		return w.err
	}

	w.files[name] = data

	return nil
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{files: make(map[string][]byte)}
}
