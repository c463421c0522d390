//go:build property

package order

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genPath builds script paths from a small vocabulary so that rank, name
// and path ties all occur often.
func genPath() gopter.Gen {
	segments := gen.OneConstOf("a", "b", "lib", "core", "feature", "my-lib-kit", "hardcore", "vendor")
	files := gen.OneConstOf("a.js", "b.js", "main.js", "util.js", "library.js")

	return gopter.CombineGens(
		gen.SliceOfN(3, segments),
		gen.IntRange(0, 3),
		files,
	).Map(func(values []interface{}) string {
		segs := values[0].([]string)
		depth := values[1].(int)
		file := values[2].(string)
		parts := append(append([]string{}, segs[:depth]...), file)
		return strings.Join(parts, "/")
	})
}

func TestCompareProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1234)
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("antisymmetric", prop.ForAll(
		func(a, b string) bool {
			return Compare(a, b) == -Compare(b, a)
		},
		genPath(), genPath(),
	))

	properties.Property("zero only for equal paths", prop.ForAll(
		func(a, b string) bool {
			return (Compare(a, b) == 0) == (a == b)
		},
		genPath(), genPath(),
	))

	properties.Property("transitive", prop.ForAll(
		func(a, b, c string) bool {
			if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
				return Compare(a, c) <= 0
			}
			return true
		},
		genPath(), genPath(), genPath(),
	))

	properties.Property("lib directories load before the rest", prop.ForAll(
		func(a, b string) bool {
			ka, kb := keyOf(a), keyOf(b)
			if strings.Contains(ka.Dir, "lib") && !strings.Contains(kb.Dir, "lib") {
				return Compare(a, b) < 0
			}
			return true
		},
		genPath(), genPath(),
	))

	properties.Property("sort ignores input order", prop.ForAll(
		func(paths []string, seed int64) bool {
			want := slices.Clone(paths)
			Sort(want)

			shuffled := append([]string{}, paths...)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			Sort(shuffled)

			for i := range want {
				if want[i] != shuffled[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPath()), gen.Int64(),
	))

	properties.TestingRun(t)
}
