package service

import (
	"math/rand"

	"duduk_sebentar/internal/models"
)

// sessionDeckSize 每場遊戲抽出的題數
const sessionDeckSize = 16

// questionCards 是遊戲的固定題庫（30 題），純資料，不可變
var questionCards = []models.QuestionCard{
	// Level 1 – Ringan & Reflektif
	{ID: 1, Question: "Apa arti kata \"Maaf\" bagi kamu?", Category: "reflection"},
	{ID: 2, Question: "Apa satu hal yang aku lakukan yang membuatmu merasa paling dicintai, tapi jarang kamu ungkapkan?", Category: "love-language"},
	{ID: 3, Question: "Hal kecil apa yang aku lakukan tapi sebenarnya berarti banyak bagi kamu?", Category: "appreciation"},
	{ID: 4, Question: "Selama bersama, apakah ada momen di mana aku tidak mendengarkan ucapan dan ceritamu?", Category: "listening"},
	{ID: 5, Question: "Bagaimana cara kamu menilai kalau aku benar-benar mendengar perasaanmu?", Category: "communication"},

	// Level 2 – Reflektif & Emosional
	{ID: 6, Question: "Topik apa yang paling kamu takutin buat diomongin ke aku dan kenapa?", Category: "fear"},
	{ID: 7, Question: "Apakah aku pernah menyakiti kamu saat marah?", Category: "conflict"},
	{ID: 8, Question: "Apakah ada keputusan atau tindakan yang kamu ambil karena memikirkan aku, walau itu berat bagi dirimu sendiri?", Category: "sacrifice"},
	{ID: 9, Question: "Jika kita bisa mengulang satu momen penting dalam hubungan ini, momen apa yang ingin kamu ulang dan kenapa?", Category: "memories"},
	{ID: 10, Question: "Hal apa yang ingin kamu pelajari atau pahami tentang aku tapi belum berani bertanya?", Category: "curiosity"},
	{ID: 11, Question: "Apakah ada bagian dari dirimu yang paling pribadi tapi belum pernah kamu bagi padaku?", Category: "vulnerability"},
	{ID: 12, Question: "Pernah nggak kamu merasa dilema antara kebahagiaan pribadi dan kebahagiaan hubungan kita?", Category: "balance"},

	// Level 3 – Sulit & Berisiko Tinggi
	{ID: 13, Question: "Ada nggak mimpi yang kamu relain karena aku? Kalau ada, apakah sekarang masih mau capai mimpi itu?", Category: "dreams"},
	{ID: 14, Question: "Apakah ada harapan atau impianmu yang sengaja kamu tahan karena takut aku menilai atau kecewa?", Category: "expectations"},
	{ID: 15, Question: "Dalam hubungan ini, adakah momen yang membuat kamu hampir menyerah? Lalu, apa yang membuat kamu tetap bertahan bersamaku?", Category: "commitment"},
	{ID: 16, Question: "Apa satu hal yang paling kamu sesali tidak pernah kamu ceritakan atau lakukan dalam hubungan ini?", Category: "regret"},
	{ID: 17, Question: "Apakah ada sesuatu yang ingin kamu katakan padaku tapi takut bisa merusak hubungan kita?", Category: "honesty"},
	{ID: 18, Question: "Apakah ada bagian dari cinta atau kasih sayangmu yang belum pernah aku lihat atau kamu tunjukkan karena takut tidak diterima?", Category: "acceptance"},
	{ID: 19, Question: "Bagaimana perasaanmu ketika aku diam atau nggak merespons saat kamu sedang butuh dukungan emosional?", Category: "support"},
	{ID: 20, Question: "Apa bagian dari masa lalumu yang paling memengaruhi cara kamu mencintai sekarang, dan bagaimana itu muncul dalam hubungan kita?", Category: "past"},
	{ID: 21, Question: "Apakah ada ketakutan tentang dirimu sendiri yang membuatmu sulit terbuka padaku sepenuhnya?", Category: "fear"},
	{ID: 22, Question: "Apa satu hal yang menurutmu paling sulit dari memahami aku sepenuhnya, tapi ingin kamu pelajari?", Category: "understanding"},
	{ID: 23, Question: "Hal apa yang paling kamu takutkan akan hilang dari hubungan kita jika aku berubah atau berbeda suatu hari nanti?", Category: "change"},
	{ID: 24, Question: "Apakah ada momen ketika kamu merasa aku gagal memahami rasa sakit atau kekecewaanmu?", Category: "pain"},
	{ID: 25, Question: "Dalam hubungan ini, kapan kamu merasa paling rentan tapi tetap memilih bertahan?", Category: "resilience"},
	{ID: 26, Question: "Jika suatu hari kita harus menghadapi konflik besar, apa yang paling kamu takutkan akan hilang dari hubungan ini?", Category: "future-conflict"},
	{ID: 27, Question: "Jika cinta kita digambarkan sebagai sebuah tempat atau dunia, seperti apa tempat itu menurutmu?", Category: "love-vision"},
	{ID: 28, Question: "Hal apa yang paling ingin kamu pertahankan selamanya dalam hubungan ini?", Category: "preservation"},
	{ID: 29, Question: "Apa ketakutan terbesarmu tentang masa depan kita bersama?", Category: "future"},
	{ID: 30, Question: "Setelah semua suka, duka, dan konflik yang kita alami, apa arti cinta sejati menurutmu sekarang?", Category: "meaning"},
}

// DrawCards 從題庫隨機抽出 n 張不重複的卡片。
// 複製整個題庫洗牌後取前段，原始題庫保持不動。
func DrawCards(n int) []models.QuestionCard {
	shuffled := make([]models.QuestionCard, len(questionCards))
	copy(shuffled, questionCards)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cards := make([]models.QuestionCard, n)
	copy(cards, shuffled[:n])
	return cards
}
