package mdtranslate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Default credential locations, relative to the working directory.
const (
	DefaultCredentialsFile = "secrets/credentials.json"
	DefaultTokenFile       = "secrets/token.json"
)

const (
	driveFolderMIME = "application/vnd.google-apps.folder"
	driveDocMIME    = "application/vnd.google-apps.document"
)

// GoogleConfig locates OAuth material and the Drive destination for
// published documents.
type GoogleConfig struct {
	CredentialsFile string // OAuth client secret JSON
	TokenFile       string // persisted user token JSON
	FolderID        string // optional Drive parent folder for all output
}

// GDocsRenderer publishes render jobs as Google Docs. Documents land in a
// per-language Drive subfolder under FolderID with sequential names; without
// a folder the job title names the document.
type GDocsRenderer struct {
	docs     *docs.Service
	drive    *drive.Service
	folderID string
	log      zerolog.Logger
}

// NewGDocsRenderer builds Docs and Drive clients from a pre-authorized
// token. There is no interactive consent flow: a missing or unreadable token
// is an auth error and cloud output for the run is off.
func NewGDocsRenderer(ctx context.Context, cfg GoogleConfig, log zerolog.Logger) (*GDocsRenderer, error) {
	credFile := cfg.CredentialsFile
	if credFile == "" {
		credFile = DefaultCredentialsFile
	}
	tokenFile := cfg.TokenFile
	if tokenFile == "" {
		tokenFile = DefaultTokenFile
	}

	credJSON, err := os.ReadFile(credFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read client secret %s: %v", ErrCloudAuth, credFile, err)
	}
	conf, err := google.ConfigFromJSON(credJSON, docs.DocumentsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse client secret: %v", ErrCloudAuth, err)
	}

	tokenJSON, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read token %s: %v", ErrCloudAuth, tokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("%w: parse token: %v", ErrCloudAuth, err)
	}

	client := conf.Client(ctx, &token)
	docsSvc, err := docs.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%w: docs client: %v", ErrCloudAuth, err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%w: drive client: %v", ErrCloudAuth, err)
	}

	return &GDocsRenderer{
		docs:     docsSvc,
		drive:    driveSvc,
		folderID: cfg.FolderID,
		log:      log,
	}, nil
}

// Publish creates the document, fills its body, sets up header and footer,
// and returns the document URL.
func (r *GDocsRenderer) Publish(ctx context.Context, job RenderJob) (string, error) {
	docID, err := r.createDocument(ctx, job)
	if err != nil {
		return "", err
	}

	if reqs := buildDocRequests(job); len(reqs) > 0 {
		_, err = r.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
			Requests: reqs,
		}).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("%w: populate document: %v", ErrRender, err)
		}
	}

	if err := r.setupLayout(ctx, docID, job); err != nil {
		return "", err
	}

	url := "https://docs.google.com/document/d/" + docID + "/edit"
	r.log.Info().Str("lang", job.Target.Code).Str("url", url).Msg("published document")
	return url, nil
}

// createDocument makes the Doc via Drive so it can be parented in one call.
// With a root folder configured, the document goes into a per-language
// subfolder and takes the next sequential number as its name.
func (r *GDocsRenderer) createDocument(ctx context.Context, job RenderJob) (string, error) {
	name := job.Title
	if name == "" {
		name = job.Name
	}
	parent := r.folderID

	if r.folderID != "" {
		folderID, err := r.langFolder(ctx, job.Target)
		if err != nil {
			return "", err
		}
		parent = folderID
		seq, err := r.nextSequence(ctx, folderID)
		if err != nil {
			return "", err
		}
		name = strconv.Itoa(seq)
	}

	meta := &drive.File{Name: name, MimeType: driveDocMIME}
	if parent != "" {
		meta.Parents = []string{parent}
	}
	file, err := r.drive.Files.Create(meta).Fields("id").
		SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: create document: %v", ErrRender, err)
	}
	return file.Id, nil
}

// langFolder finds the language's subfolder by case-insensitive name, or
// creates it.
func (r *GDocsRenderer) langFolder(ctx context.Context, target LanguageTarget) (string, error) {
	want := strings.ToLower(strings.TrimSpace(target.Name))
	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false",
		r.folderID, driveFolderMIME)

	pageToken := ""
	for {
		call := r.drive.Files.List().Q(query).Fields("nextPageToken, files(id, name)").
			Corpora("allDrives").IncludeItemsFromAllDrives(true).SupportsAllDrives(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("%w: list folders: %v", ErrRender, err)
		}
		for _, f := range res.Files {
			if strings.ToLower(strings.TrimSpace(f.Name)) == want {
				return f.Id, nil
			}
		}
		pageToken = res.NextPageToken
		if pageToken == "" {
			break
		}
	}

	folder, err := r.drive.Files.Create(&drive.File{
		Name:     target.Name,
		MimeType: driveFolderMIME,
		Parents:  []string{r.folderID},
	}).Fields("id").SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: create folder %s: %v", ErrRender, target.Name, err)
	}
	return folder.Id, nil
}

// nextSequence counts the documents already in the folder and returns the
// next 1-based number.
func (r *GDocsRenderer) nextSequence(ctx context.Context, folderID string) (int, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false",
		folderID, driveDocMIME)
	count := 0
	pageToken := ""
	for {
		call := r.drive.Files.List().Q(query).Fields("nextPageToken, files(id)").
			Corpora("allDrives").IncludeItemsFromAllDrives(true).SupportsAllDrives(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return 0, fmt.Errorf("%w: count documents: %v", ErrRender, err)
		}
		count += len(res.Files)
		pageToken = res.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return count + 1, nil
}

// setupLayout adds the default header with the banner image and a footer
// line. The header and footer segment IDs only exist after their create
// calls reply, so this takes three round trips.
func (r *GDocsRenderer) setupLayout(ctx context.Context, docID string, job RenderJob) error {
	headerResp, err := r.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{CreateHeader: &docs.CreateHeaderRequest{Type: "DEFAULT"}}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: create header: %v", ErrRender, err)
	}
	headerID := ""
	if len(headerResp.Replies) > 0 && headerResp.Replies[0].CreateHeader != nil {
		headerID = headerResp.Replies[0].CreateHeader.HeaderId
	}

	var reqs []*docs.Request
	uploadedImageID := ""
	if job.HeaderImage != "" && headerID != "" {
		uri, fileID, err := r.headerImageURI(ctx, job.HeaderImage)
		if err != nil {
			r.log.Warn().Err(err).Msg("header image unavailable, continuing without it")
		} else if uri != "" {
			uploadedImageID = fileID
			reqs = append(reqs,
				&docs.Request{InsertInlineImage: &docs.InsertInlineImageRequest{
					Uri:      uri,
					Location: &docs.Location{SegmentId: headerID, Index: 0},
					ObjectSize: &docs.Size{
						Width: &docs.Dimension{Magnitude: 500, Unit: "PT"},
					},
				}},
				&docs.Request{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
					Range:          &docs.Range{SegmentId: headerID, StartIndex: 0, EndIndex: 1},
					ParagraphStyle: &docs.ParagraphStyle{Alignment: "CENTER"},
					Fields:         "alignment",
				}},
			)
		}
	}

	footerResp, err := r.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{CreateFooter: &docs.CreateFooterRequest{Type: "DEFAULT"}}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: create footer: %v", ErrRender, err)
	}
	if len(footerResp.Replies) > 0 && footerResp.Replies[0].CreateFooter != nil {
		footerID := footerResp.Replies[0].CreateFooter.FooterId
		footer := "Página "
		align := "END"
		if job.Target.IsRTL() {
			align = "START"
		}
		reqs = append(reqs,
			&docs.Request{InsertText: &docs.InsertTextRequest{
				Text:     footer,
				Location: &docs.Location{SegmentId: footerID, Index: 0},
			}},
			&docs.Request{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range:          &docs.Range{SegmentId: footerID, StartIndex: 0, EndIndex: u16len(footer)},
				ParagraphStyle: &docs.ParagraphStyle{Alignment: align},
				Fields:         "alignment",
			}},
		)
	}

	if len(reqs) > 0 {
		_, err = r.docs.Documents.BatchUpdate(docID, &docs.BatchUpdateDocumentRequest{
			Requests: reqs,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%w: document layout: %v", ErrRender, err)
		}
	}

	// The embedded copy lives in the document now; the Drive upload was
	// only a staging area.
	if uploadedImageID != "" {
		if err := r.drive.Files.Delete(uploadedImageID).Context(ctx).Do(); err != nil {
			r.log.Warn().Err(err).Msg("failed to delete temporary header image from Drive")
		}
	}
	return nil
}

// headerImageURI resolves the banner image to a URI the Docs API can fetch.
// HTTP URLs pass through; local files are staged in Drive with public-link
// read access and deleted after embedding.
func (r *GDocsRenderer) headerImageURI(ctx context.Context, image string) (uri, uploadedID string, err error) {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image, "", nil
	}

	f, err := os.Open(image)
	if err != nil {
		return "", "", fmt.Errorf("open header image: %w", err)
	}
	defer f.Close()

	file, err := r.drive.Files.Create(&drive.File{
		Name:     filepath.Base(image),
		MimeType: "image/png",
	}).Media(f).Fields("id, webContentLink").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("upload header image: %w", err)
	}

	_, err = r.drive.Permissions.Create(file.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("share header image: %w", err)
	}
	return file.WebContentLink, file.Id, nil
}
