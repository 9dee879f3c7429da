// Package upload detects and decodes multipart/form-data request bodies.
//
// Detection is a cheap shape check on the first lines of the body and never
// fails: a body that does not look like multipart simply has no upload. Only
// bodies that pass the check are handed to mime/multipart for decoding, so a
// decoding error means the client sent something that looked like an upload
// but was broken, and it is reported as a plain error.
//
// # Usage
//
//	ex := upload.NewExtractor(body)
//	if !ex.Present() {
//	    // no upload in this request
//	}
//	files, err := ex.Extract()
//	if err != nil {
//	    return err
//	}
//	err = files["document"].SaveAs("/var/uploads/doc.pdf")
package upload
