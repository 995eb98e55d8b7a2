package validation

import "testing"

const mb = 1024 * 1024

func TestCheckUpload(t *testing.T) {
	general := UploadRules{MaxSize: 5 * mb, AllowSVG: true}
	imageStorage := UploadRules{MaxSize: 10 * mb, AllowSVG: false}

	tests := []struct {
		name        string
		contentType string
		size        int64
		rules       UploadRules
		wantErr     bool
	}{
		{
			name:        "jpeg within limit",
			contentType: "image/jpeg",
			size:        4 * mb,
			rules:       general,
			wantErr:     false,
		},
		{
			name:        "png at exact limit",
			contentType: "image/png",
			size:        5 * mb,
			rules:       general,
			wantErr:     false,
		},
		{
			name:        "6MB exceeds general limit",
			contentType: "image/png",
			size:        6 * mb,
			rules:       general,
			wantErr:     true,
		},
		{
			name:        "6MB fits image storage limit",
			contentType: "image/png",
			size:        6 * mb,
			rules:       imageStorage,
			wantErr:     false,
		},
		{
			name:        "11MB exceeds image storage limit",
			contentType: "image/png",
			size:        11 * mb,
			rules:       imageStorage,
			wantErr:     true,
		},
		{
			name:        "svg allowed on general endpoint",
			contentType: "image/svg+xml",
			size:        1 * mb,
			rules:       general,
			wantErr:     false,
		},
		{
			name:        "svg rejected by image storage",
			contentType: "image/svg+xml",
			size:        1 * mb,
			rules:       imageStorage,
			wantErr:     true,
		},
		{
			name:        "pdf rejected",
			contentType: "application/pdf",
			size:        1 * mb,
			rules:       general,
			wantErr:     true,
		},
		{
			name:        "empty file rejected",
			contentType: "image/png",
			size:        0,
			rules:       general,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := CheckUpload(tt.contentType, tt.size, tt.rules)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("CheckUpload(%q, %d) errors = %v, wantErr %v", tt.contentType, tt.size, errs, tt.wantErr)
			}
		})
	}
}
