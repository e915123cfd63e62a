package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/rajputgovind/Trip--Project-Apis/internal/config"
	"github.com/rajputgovind/Trip--Project-Apis/internal/gcp"
	"github.com/rajputgovind/Trip--Project-Apis/internal/httpjson"
)

// Folders clients may upload into. Anything else is rejected.
var uploadFolders = map[string]bool{
	"tripImages":        true,
	"destinationImages": true,
	"profileImages":     true,
	"joiningFiles":      true,
}

type Uploads struct {
	cfg     config.Config
	clients *gcp.Clients
	iam     *credentials.IamCredentialsClient
}

func NewUploads(cfg config.Config, clients *gcp.Clients) *Uploads {
	// IAM client is optional; only needed for signed URLs.
	iamClient, _ := credentials.NewIamCredentialsClient(context.Background())
	return &Uploads{cfg: cfg, clients: clients, iam: iamClient}
}

type signedURLReq struct {
	Folder         string `json:"folder"`   // e.g. "tripImages"
	FileName       string `json:"fileName"` // original client file name
	ContentType    string `json:"contentType,omitempty"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"` // default 900
}

type signedURLResp struct {
	URL        string `json:"url"`
	ObjectPath string `json:"objectPath"`
	Method     string `json:"method"`
	ExpiresAt  int64  `json:"expiresAt"`
}

func (h *Uploads) CreateSignedUploadURL(w http.ResponseWriter, r *http.Request) {
	var req signedURLReq
	if err := httpjson.Read(r, &req); err != nil || req.FileName == "" {
		httpjson.Error(w, http.StatusBadRequest, "fileName is required")
		return
	}
	if !uploadFolders[req.Folder] {
		httpjson.Error(w, http.StatusBadRequest, "unknown upload folder")
		return
	}
	// Prefix with a fresh id so client names can never collide or overwrite.
	objectPath := path.Join(req.Folder, uuid.NewString()+"-"+path.Base(req.FileName))
	url, exp, err := h.signedURL(r.Context(), objectPath, req.ContentType, req.ExpiresSeconds)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, signedURLResp{URL: url, ObjectPath: objectPath, Method: "PUT", ExpiresAt: exp.Unix()})
}

type signedURLsReq struct {
	Items []signedURLReq `json:"items"`
}

func (h *Uploads) CreateSignedUploadURLs(w http.ResponseWriter, r *http.Request) {
	var req signedURLsReq
	if err := httpjson.Read(r, &req); err != nil || len(req.Items) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "items is required")
		return
	}
	out := make([]signedURLResp, 0, len(req.Items))
	for _, it := range req.Items {
		if it.FileName == "" || !uploadFolders[it.Folder] {
			continue
		}
		objectPath := path.Join(it.Folder, uuid.NewString()+"-"+path.Base(it.FileName))
		url, exp, err := h.signedURL(r.Context(), objectPath, it.ContentType, it.ExpiresSeconds)
		if err != nil {
			out = append(out, signedURLResp{ObjectPath: objectPath, Method: "PUT"})
			continue
		}
		out = append(out, signedURLResp{URL: url, ObjectPath: objectPath, Method: "PUT", ExpiresAt: exp.Unix()})
	}
	httpjson.Write(w, http.StatusOK, map[string]interface{}{"items": out})
}

type deleteObjectReq struct {
	ObjectPath string `json:"objectPath"`
}

// DeleteObject removes an uploaded object, e.g. after its trip or joining
// request is deleted. Only objects inside the known upload folders may go.
func (h *Uploads) DeleteObject(w http.ResponseWriter, r *http.Request) {
	var req deleteObjectReq
	if err := httpjson.Read(r, &req); err != nil || req.ObjectPath == "" {
		httpjson.Error(w, http.StatusBadRequest, "objectPath is required")
		return
	}
	folder, _, found := strings.Cut(req.ObjectPath, "/")
	if !found || !uploadFolders[folder] {
		httpjson.Error(w, http.StatusBadRequest, "unknown upload folder")
		return
	}
	if h.cfg.StorageBucket == "" {
		httpjson.Error(w, http.StatusBadRequest, "STORAGE_BUCKET is not set")
		return
	}
	obj := h.clients.Storage.Bucket(h.cfg.StorageBucket).Object(req.ObjectPath)
	if err := obj.Delete(r.Context()); err != nil {
		if err == storage.ErrObjectNotExist {
			httpjson.Error(w, http.StatusNotFound, "object not found")
			return
		}
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete object")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]interface{}{"deleted": req.ObjectPath})
}

func (h *Uploads) signedURL(ctx context.Context, objectPath, contentType string, expiresSeconds int64) (string, time.Time, error) {
	if h.cfg.StorageBucket == "" {
		return "", time.Time{}, fmt.Errorf("STORAGE_BUCKET is not set")
	}
	if h.cfg.SignedURLServiceAccountEmail == "" {
		return "", time.Time{}, fmt.Errorf("SIGNED_URL_SERVICE_ACCOUNT_EMAIL is not set")
	}
	if h.iam == nil {
		return "", time.Time{}, fmt.Errorf("IAM credentials client not available")
	}
	if expiresSeconds <= 0 || expiresSeconds > 3600 {
		expiresSeconds = 900
	}
	exp := time.Now().Add(time.Duration(expiresSeconds) * time.Second)

	// V4 signed URL for PUT (upload).
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: h.cfg.SignedURLServiceAccountEmail,
		SignBytes: func(b []byte) ([]byte, error) {
			name := fmt.Sprintf("projects/-/serviceAccounts/%s", h.cfg.SignedURLServiceAccountEmail)
			resp, err := h.iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    name,
				Payload: b,
			})
			if err != nil {
				return nil, err
			}
			return resp.SignedBlob, nil
		},
	}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}

	url, err := storage.SignedURL(h.cfg.StorageBucket, objectPath, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign url (check service account + permissions): %v", err)
	}
	return url, exp, nil
}
