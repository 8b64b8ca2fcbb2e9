package constants

// Key penyimpanan (fixed, jangan diubah: data lama bergantung ke sini)
const (
	KeySubjects      = "@attendku/subjects"
	KeySlots         = "@attendku/slots"
	KeyAttendance    = "@attendku/attendance"
	KeySlotOverrides = "@attendku/slotOverrides"
	KeyHolidays      = "@attendku/holidays"
	KeySettings      = "@attendku/settings"
	KeyFirstLaunch   = "@attendku/firstLaunch"
)

// Pesan error umum untuk user
const (
	MsgPersistFailed = "❌ Gagal menyimpan data. Silakan coba lagi."
	MsgLoadFailed    = "❌ Gagal memuat data."
)
