package models

// Personnel: Harmony Ref ile takip edilen depo personeli.
// Profil alanları haftalık Excel yüklemesiyle dolar; VardiyaAmiri ve Depo
// sadece koli verme akışında güncellenir. Kayıtlar hiç silinmez.
type Personnel struct {
	HarmonyRef       string `gorm:"primaryKey;size:50" json:"harmony_ref"`
	KayitNo          string `gorm:"size:50" json:"kayit_no"`
	Adi              string `gorm:"size:100" json:"adi"`
	Soyadi           string `gorm:"size:100" json:"soyadi"`
	Gorevi           string `gorm:"size:100" json:"gorevi"`
	Telefon          string `gorm:"size:50" json:"telefon"`
	IsTelefonu       string `gorm:"size:50" json:"is_telefonu"`
	Dahili           string `gorm:"size:50" json:"dahili"`
	IseGirisTarihi   string `gorm:"size:50" json:"ise_giris_tarihi"`
	IstenCikisTarihi string `gorm:"size:50" json:"isten_cikis_tarihi"`
	Tarihi           string `gorm:"size:50" json:"tarihi"`
	Guzergah         string `gorm:"size:150" json:"guzergah"`
	Cadde            string `gorm:"size:150" json:"cadde"`
	Durak            string `gorm:"size:150" json:"durak"`
	Adres            string `gorm:"size:255" json:"adres"`
	Ilce             string `gorm:"size:100" json:"ilce"`
	AnaSurec         string `gorm:"size:100" json:"ana_surec"`
	DetaySurec       string `gorm:"size:100" json:"detay_surec"`
	GirisLokasyonu   string `gorm:"size:100" json:"giris_lokasyonu"`
	CikisLokasyonu   string `gorm:"size:100" json:"cikis_lokasyonu"`
	BeyazYaka        *int   `json:"beyaz_yaka"`
	Servis           string `gorm:"size:100" json:"servis"`
	AdSoyad          string `gorm:"size:200" json:"ad_soyad"`
	ServisLokasyonu  string `gorm:"size:100" json:"servis_lokasyonu"`
	VardiyaAmiri     string `gorm:"size:100" json:"vardiya_amiri"`
	Depo             string `gorm:"size:100" json:"depo"`
}

func (Personnel) TableName() string { return "personnel" }
