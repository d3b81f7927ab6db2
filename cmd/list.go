package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flashfs/nffsrestore/internal/objects"
	"github.com/flashfs/nffsrestore/pkg/app"
)

var (
	listPath      string
	listRecursive bool
)

var listCmd = &cobra.Command{
	Use:   "list [image-path]",
	Short: "Restore a flash image and print its directory tree",
	Long: `list restores a flash image and prints the entries found under
--path (the root directory by default). With --recursive it descends
into every subdirectory instead of stopping at one level.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listPath, "path", "p", "/", "directory path to list")
	listCmd.Flags().BoolVarP(&listRecursive, "recursive", "r", false, "recursive listing")
}

func runList(imagePath string) error {
	target := &app.PathTarget{Path: listPath, Recursive: listRecursive}
	if err := target.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid --path", err)
	}

	h, dev, err := openAndRestore(imagePath, false, false)
	if err != nil {
		return err
	}
	defer dev.Close()

	ctx := appContext()
	ctx.Log(fmt.Sprintf("listing %s", target))

	dir, err := resolveDir(h.Root, target.Path)
	if err != nil {
		return app.NewError(app.ErrCodePathNotFound, "resolving path", err)
	}

	printTree(dir, 0)
	return nil
}

// resolveDir walks root's children following each non-empty path
// segment by filename, returning the directory inode named by path.
func resolveDir(root *objects.Inode, path string) (*objects.Inode, error) {
	cur := root
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		var next *objects.Inode
		for _, child := range cur.Children {
			if child.Filename == seg && child.IsDir() {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("path not found: %s", path)
		}
		cur = next
	}
	return cur, nil
}

func printTree(dir *objects.Inode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, child := range dir.Children {
		kind := "file"
		if child.IsDir() {
			kind = "dir"
		}
		fmt.Printf("%s%s (%s, id=%d)\n", indent, child.Filename, kind, child.ID)
		if child.IsDir() && listRecursive {
			printTree(child, depth+1)
		}
	}
}
