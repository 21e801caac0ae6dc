// file: internals/features/peminjaman/model/peminjaman_action_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Sumber aksi: tombol dashboard atau scan QR.
const (
	SumberDashboard = "dashboard"
	SumberScan      = "scan"
)

// PeminjamanActionLogModel: jejak setiap transisi yang dikirim gateway ke
// DSR API, termasuk yang ditolak DSR API (Berhasil=false).
type PeminjamanActionLogModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:peminjaman_action_log_id" json:"id"`

	PeminjamanID int64  `gorm:"not null;index:idx_pal_peminjaman_created,priority:1;column:peminjaman_action_log_peminjaman_id" json:"peminjaman_id"`
	Aksi         Aksi   `gorm:"type:varchar(20);not null;column:peminjaman_action_log_aksi" json:"aksi"`
	Sumber       string `gorm:"type:varchar(20);not null;default:'dashboard';column:peminjaman_action_log_sumber" json:"sumber"`

	ActorNIK  string `gorm:"type:varchar(32);not null;index;column:peminjaman_action_log_actor_nik" json:"actor_nik"`
	ActorNama string `gorm:"type:varchar(150);column:peminjaman_action_log_actor_nama" json:"actor_nama"`
	ActorRole string `gorm:"type:varchar(40);not null;column:peminjaman_action_log_actor_role" json:"actor_role"`

	StatusSebelum     Status     `gorm:"type:varchar(20);column:peminjaman_action_log_status_sebelum" json:"status_sebelum"`
	VerifikasiSebelum Verifikasi `gorm:"type:varchar(20);column:peminjaman_action_log_verifikasi_sebelum" json:"verifikasi_sebelum"`
	StatusSesudah     Status     `gorm:"type:varchar(20);column:peminjaman_action_log_status_sesudah" json:"status_sesudah,omitempty"`
	VerifikasiSesudah Verifikasi `gorm:"type:varchar(20);column:peminjaman_action_log_verifikasi_sesudah" json:"verifikasi_sesudah,omitempty"`

	Kategori    Kategori       `gorm:"type:varchar(20);column:peminjaman_action_log_kategori" json:"kategori"`
	JenisBarang pq.StringArray `gorm:"type:text[];column:peminjaman_action_log_jenis_barang" json:"jenis_barang"`
	Snapshot    datatypes.JSON `gorm:"type:jsonb;column:peminjaman_action_log_snapshot" json:"snapshot,omitempty"`

	Berhasil bool   `gorm:"not null;default:false;column:peminjaman_action_log_berhasil" json:"berhasil"`
	Pesan    string `gorm:"type:text;column:peminjaman_action_log_pesan" json:"pesan,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_pal_peminjaman_created,priority:2;column:peminjaman_action_log_created_at" json:"created_at"`
}

func (PeminjamanActionLogModel) TableName() string {
	return "peminjaman_action_logs"
}
