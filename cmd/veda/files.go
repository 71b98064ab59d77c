package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/diwise/veda-client/pkg/veda/client"
	"github.com/spf13/cobra"
)

var (
	uploadPath   string
	downloadFile string
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file uri] [file]",
	Short: "Upload a file attachment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := connect(ctx)
		if err != nil {
			return err
		}

		return uploadFile(ctx, c, args[0], args[1], cmd.OutOrStdout())
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [file uri]",
	Short: "Download a file attachment",
	Long:  `Download a file attachment and write it to stdout, or to the file given with --out.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := connect(ctx)
		if err != nil {
			return err
		}

		if downloadFile == "" {
			return downloadTo(ctx, c, args[0], cmd.OutOrStdout())
		}

		f, err := os.Create(downloadFile)
		if err != nil {
			return err
		}
		defer f.Close()

		return downloadTo(ctx, c, args[0], f)
	},
}

func uploadFile(ctx context.Context, c client.VedaClient, uri, file string, w io.Writer) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = c.UploadFile(ctx, uri, uploadPath, filepath.Base(file), f)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s uploaded as %s\n", file, uri)
	return nil
}

func downloadTo(ctx context.Context, c client.VedaClient, uri string, w io.Writer) error {
	content, err := c.DownloadFile(ctx, uri)
	if err != nil {
		return err
	}

	_, err = w.Write(content)
	return err
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	uploadCmd.Flags().StringVar(&uploadPath, "path", "", "Directory on the platform to store the file in")
	downloadCmd.Flags().StringVarP(&downloadFile, "out", "o", "", "Write the file here instead of to stdout")
}
