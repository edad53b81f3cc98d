package report

import (
	"io"
	"strings"

	"github.com/cwbudde/algo-approxbench/family"
)

// WriteCatalog lists every family with its default range, references and
// variants.
func WriteCatalog(w io.Writer, c *family.Catalog) error {
	ew := &errWriter{w: w}

	for i, f := range c.Families() {
		if i > 0 {
			ew.printf("\n")
		}
		start, end := f.DefaultRange()
		ew.printf("%s\n", f.Name())
		ew.printf("  range:      [%g, %g]\n", start, end)
		ew.printf("  references: %s\n", strings.Join(f.ReferenceNames(), ", "))
		ew.printf("  variants:\n")
		for _, name := range f.VariantNames() {
			ew.printf("    - %s\n", name)
		}
	}

	return ew.err
}
