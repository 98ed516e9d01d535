package dataset_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papari-man/LVILC/internal/dataset"
)

var _ = Describe("Default sample", func() {
	It("is valid and sorted by redshift", func() {
		d := dataset.Default()
		Expect(d.Validate()).To(Succeed())
		Expect(d.Len()).To(Equal(42))
		Expect(d.Source).To(Equal("builtin"))

		for i := 1; i < d.Len(); i++ {
			Expect(d.Z[i]).To(BeNumerically(">", d.Z[i-1]))
		}
	})

	It("summarizes to the expected ranges", func() {
		s := dataset.Default().Summarize()
		Expect(s.N).To(Equal(42))
		Expect(s.ZMin).To(BeNumerically("~", 0.0086, 1e-9))
		Expect(s.ZMax).To(BeNumerically("~", 1.3798, 1e-9))
		Expect(s.MeanErr).To(BeNumerically("~", 0.163, 0.01))
	})
})

var _ = Describe("CSV round trip", func() {
	It("reloads what it saved", func() {
		path := filepath.Join(GinkgoT().TempDir(), "sample.csv")
		orig := dataset.Default()
		Expect(orig.SaveCSV(path)).To(Succeed())

		loaded, err := dataset.LoadCSV(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Len()).To(Equal(orig.Len()))
		Expect(loaded.Source).To(Equal(path))
		Expect(loaded.Z[0]).To(BeNumerically("~", orig.Z[0], 1e-4))
		Expect(loaded.Mu[41]).To(BeNumerically("~", orig.Mu[41], 1e-4))
	})

	It("rejects malformed files", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.csv")
		Expect(os.WriteFile(path, []byte("z,mu,sigma_mu\n0.1,38.0,-0.2\n"), 0o644)).To(Succeed())

		_, err := dataset.LoadCSV(path)
		Expect(err).To(MatchError(ContainSubstring("must be positive")))
	})

	It("rejects samples too small to fit", func() {
		path := filepath.Join(GinkgoT().TempDir(), "tiny.csv")
		Expect(os.WriteFile(path, []byte("z,mu,sigma_mu\n0.1,38.0,0.2\n0.5,42.0,0.2\n"), 0o644)).To(Succeed())

		_, err := dataset.LoadCSV(path)
		Expect(err).To(MatchError(ContainSubstring("need at least 4")))
	})

	It("fails cleanly on a missing file", func() {
		_, err := dataset.LoadCSV(filepath.Join(GinkgoT().TempDir(), "nope.csv"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Load", func() {
	It("prefers the LVILC_DATA override", func() {
		path := filepath.Join(GinkgoT().TempDir(), "override.csv")
		Expect(dataset.Default().SaveCSV(path)).To(Succeed())
		GinkgoT().Setenv(dataset.EnvData, path)

		d, err := dataset.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Source).To(Equal(path))
	})

	It("falls back to the builtin sample", func() {
		GinkgoT().Setenv(dataset.EnvData, "")

		d, err := dataset.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Source).To(Equal("builtin"))
	})
})
