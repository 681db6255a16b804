package main

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestRealPackageLoader_LoadsCurrentPackage(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	files, err := (&realPackageLoader{}).Load(".")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(files).NotTo(BeEmpty())
	g.Expect(files[0].Name.Name).To(Equal("main"))
}

func TestRealFileSystem_WriteFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "generated_StoreDouble.go")

	err := (&realFileSystem{}).WriteFile(path, []byte("package store\n"), 0o600)
	g.Expect(err).NotTo(HaveOccurred())

	data, err := os.ReadFile(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(data)).To(Equal("package store\n"))

	err = (&realFileSystem{}).WriteFile(filepath.Join(path, "nested"), nil, 0o600)
	g.Expect(err).To(MatchError(ContainSubstring("failed to write file")))
}
