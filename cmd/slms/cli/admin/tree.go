package admin

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"
)

func NewTreeCommand() *cobra.Command {
	var showSize bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the structured storage hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			root := rt.files.Root()
			tree := gotree.New(root)
			dirs := map[string]gotree.Tree{".": tree}

			// getDir lazily creates branch nodes for parent directories
			var getDir func(dir string) gotree.Tree
			getDir = func(dir string) gotree.Tree {
				if node, ok := dirs[dir]; ok {
					return node
				}
				parent := getDir(filepath.Dir(dir))
				node := parent.Add(filepath.Base(dir))
				dirs[dir] = node
				return node
			}

			err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				rel, relErr := filepath.Rel(root, p)
				if relErr != nil || rel == "." {
					return nil
				}
				if d.IsDir() {
					getDir(rel)
					return nil
				}

				label := d.Name()
				if showSize {
					if info, err := d.Info(); err == nil {
						label = fmt.Sprintf("%s (%d bytes)", label, info.Size())
					}
				}
				getDir(filepath.Dir(rel)).Add(label)
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Print(tree.Print())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "Show file sizes")

	return cmd
}
