// Package upload safely relocates files received from an untrusted upload
// source into a confined destination tree. It guarantees unique on-disk
// names, prevents path escape out of the configured document root, and
// tracks per-session ownership so only the originating session may delete
// what it uploaded. Batch upload is all-or-nothing: a late failure rolls
// back every file the batch already moved.
//
// Example usage:
//
//	import (
//	    "github.com/dmitrymomot/uploadkit/pkg/session"
//	    "github.com/dmitrymomot/uploadkit/upload"
//	)
//
//	uploader, err := upload.New("/var/www")
//	if err != nil {
//	    return err
//	}
//
//	sess := session.New("client-token", 24*time.Hour)
//
//	// One descriptor per physical upload slot, as reported by the platform.
//	d := upload.Descriptor{
//	    Name:     "report.pdf",
//	    MIMEType: "application/pdf",
//	    TempPath: "/tmp/php8Fa3c1",
//	    Code:     upload.CodeOK,
//	    Size:     10,
//	}
//
//	publicPath, err := uploader.UploadOne(sess, d, "uploads/docs", "",
//	    upload.WithValidator(upload.SizeValidator(5<<20)))
//	if err != nil {
//	    return err
//	}
//	// publicPath: "/uploads/docs/20260827143059_123-<hex>-report.pdf"
//
//	// Only the uploading session may delete the file.
//	if err := uploader.DeleteOne(sess, publicPath); err != nil {
//	    return err
//	}
//
// Concurrency: operations are synchronous and perform no internal locking.
// The collision probe before a move is a check-then-act sequence; hosts with
// concurrent uploaders writing to the same directory must serialize the
// probe-to-move window externally if silent overwrites are unacceptable.
package upload
