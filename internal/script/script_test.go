package script_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/AlonMell/redblack/internal/rbtree"
	"github.com/AlonMell/redblack/internal/script"
)

var _ = Describe("script", func() {
	Context("Parse", func() {
		It("should read operations, aliases and comments", func() {
			src := strings.Join([]string{
				"# build",
				"insert 17",
				"i 9",
				"+ -4   # negative keys are fine",
				"",
				"DELETE 9",
				"d 100",
				"- 17",
				"remove 3",
				"clear",
			}, "\n")

			s, err := script.Parse("build.txt", strings.NewReader(src))
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Name).To(Equal("build.txt"))
			Expect(s.Entries).To(Equal([]script.Entry{
				{Op: script.OpInsert, Key: 17, Line: 2},
				{Op: script.OpInsert, Key: 9, Line: 3},
				{Op: script.OpInsert, Key: -4, Line: 4},
				{Op: script.OpDelete, Key: 9, Line: 6},
				{Op: script.OpDelete, Key: 100, Line: 7},
				{Op: script.OpDelete, Key: 17, Line: 8},
				{Op: script.OpDelete, Key: 3, Line: 9},
				{Op: script.OpClear, Line: 10},
			}))
		})

		It("should return an empty script for empty input", func() {
			s, err := script.Parse("empty", strings.NewReader("\n# nothing\n"))
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Len()).To(BeZero())
		})

		DescribeTable("should reject bad lines with their line number",
			func(line string, cause error) {
				_, err := script.Parse("bad.txt", strings.NewReader("insert 1\n"+line+"\n"))
				Expect(err).To(HaveOccurred())
				Expect(errors.Cause(err)).To(Equal(cause))
				Expect(err.Error()).To(ContainSubstring("bad.txt:2"))
			},
			Entry("unknown op", "upsert 4", script.ErrUnknownOp),
			Entry("missing key", "insert", script.ErrMissingKey),
			Entry("bad key", "delete forty", script.ErrBadKey),
			Entry("extra key", "insert 1 2", script.ErrExtraInput),
			Entry("clear with key", "clear 5", script.ErrExtraInput),
		)
	})

	Context("WriteTo", func() {
		It("should write text that parses back to the same operations", func() {
			s, err := script.Scenario(3)
			Expect(err).ToNot(HaveOccurred())
			s.Append(script.Entry{Op: script.OpClear})

			var buf bytes.Buffer
			_, err = s.WriteTo(&buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(buf.String()).To(HavePrefix("insert 17\ninsert 9\n"))
			Expect(buf.String()).To(HaveSuffix("delete 75\nclear\n"))

			back, err := script.Parse("again", &buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(back.Len()).To(Equal(s.Len()))
			for i, e := range back.Entries {
				Expect(e.Op).To(Equal(s.Entries[i].Op))
				Expect(e.Key).To(Equal(s.Entries[i].Key))
			}
		})
	})

	Context("Apply", func() {
		var tree *rbtree.Tree[int]

		BeforeEach(func() {
			tree = rbtree.New[int]()
		})

		It("should report duplicates and missing keys as not applied", func() {
			s, err := script.Parse("ops", strings.NewReader("insert 5\ninsert 5\ndelete 6\ndelete 5\n"))
			Expect(err).ToNot(HaveOccurred())

			var outcomes []string
			err = s.Replay(func(e script.Entry) error {
				outcomes = append(outcomes, script.Apply(tree, e).String())
				return nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(outcomes).To(Equal([]string{
				"inserted 5",
				"5 already present",
				"6 not found",
				"deleted 5",
			}))
			Expect(tree.IsEmpty()).To(BeTrue())
		})

		It("should clear the tree", func() {
			tree.Insert(1)
			tree.Insert(2)

			o := script.Apply(tree, script.Entry{Op: script.OpClear})
			Expect(o.Applied).To(BeTrue())
			Expect(o.String()).To(Equal("cleared"))
			Expect(tree.Len()).To(BeZero())
		})

		It("should work against a synced tree", func() {
			synced := rbtree.NewSynced(rbtree.New[int]())
			Expect(script.Apply(synced, script.Entry{Op: script.OpInsert, Key: 3}).Applied).To(BeTrue())
			Expect(synced.Contains(3)).To(BeTrue())
		})

		It("should stop replay at the first error", func() {
			s, err := script.Scenario(0)
			Expect(err).ToNot(HaveOccurred())

			stop := errors.New("stop")
			seen := 0
			err = s.Replay(func(e script.Entry) error {
				seen++
				if e.Key == 9 {
					return stop
				}
				return nil
			})
			Expect(err).To(Equal(stop))
			Expect(seen).To(Equal(2))
		})
	})

	Context("Scenario", func() {
		It("should leave a valid tree for every canned scenario", func() {
			wantKeys := [][]int{
				{9, 17, 19, 75},
				{9, 17, 19, 75, 81},
				{9, 17, 19, 25, 75},
				{9, 17, 19, 25, 81, 83, 85},
			}
			Expect(script.Scenarios()).To(Equal(len(wantKeys)))

			for n, want := range wantKeys {
				s, err := script.Scenario(n)
				Expect(err).ToNot(HaveOccurred())
				Expect(s.Name).To(Equal("scenario-" + string(rune('0'+n))))

				tree := rbtree.New[int]()
				Expect(s.Replay(func(e script.Entry) error {
					script.Apply(tree, e)
					return tree.Verify()
				})).To(Succeed())
				Expect(tree.Keys()).To(Equal(want))
			}
		})

		It("should reject unknown scenarios", func() {
			_, err := script.Scenario(4)
			Expect(errors.Cause(err)).To(Equal(script.ErrUnknownScenario))

			_, err = script.Scenario(-1)
			Expect(err).To(HaveOccurred())
		})
	})
})
