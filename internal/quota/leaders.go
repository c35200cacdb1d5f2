package quota

import "strings"

// Kullanıcı adı -> Vardiya Amiri adı eşlemesi. Amir hesabıyla giren bir
// yetkili, başka amir adına kayıt açamaz; kilit sunucu tarafında uygulanır.
var usernameToLeader = map[string]string{
	"mesut.ozel":           "Mesut Özel",
	"serhan.atilla":        "Serhan Atilla",
	"erdal.adiguzel.bicer": "Erdal Adıgüzel Biçer",
	"levent.sengul":        "Levent Şengül",
	"firat.kullu":          "Fırat Küllü",
	"ozkan.kilic":          "Özkan Kılıç",
	"busra.cici":           "Büşra Cici",
	"cahit.altun":          "Cahit Altun",
	"emrah.dubaz":          "Emrah Dubaz",
	"halit.kaya":           "Halit Kaya",
	"senol.ogras":          "Şenol Oğraş",
	"baris.orhan":          "Barış Orhan",
	"yusuf.sayan":          "Yusuf Sayan",
}

func leaderForUsername(username string) string {
	return usernameToLeader[strings.ToLower(username)]
}
