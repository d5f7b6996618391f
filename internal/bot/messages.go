package bot

// User-facing texts. The bot speaks Russian; examples intentionally mix
// alphabets since the prediction API handles both.
const (
	msgWelcome = "👋 Привет! Отправь мне имя/фамилию, и я определю 5 наиболее вероятных этничностей/национальностей.\n\n" +
		"Примеры имен для теста:\n" +
		"• Александр\n" +
		"• Trump\n" +
		"• Kim\n" +
		"• Mohammed"

	msgNameTooShort = "❌ Имя(Фамилия) должно содержать минимум 2 символа"

	msgNoPrediction = "😞 Не удалось определить этничность/национальность. Возможно, имя/фамилия просто очень редкая!"

	msgNetworkErrorPrefix    = "⚠️ El problema - Ошибка при запросе к API: "
	msgUnexpectedErrorPrefix = "⚠️ El problema - Произошла непредвиденная ошибка: "

	msgStaleData         = "Данные устарели или отсутствуют"
	msgRenderErrorPrefix = "Ошибка создания графика: "

	msgDocumentHint = "📄 Я понимаю только текст. Отправь имя или фамилию обычным сообщением."

	msgChartButton   = "📊 Показать диаграммой"
	msgResultsHeader = "🎯 Топ-5 этничностей/национальностей для %s:\n"
	msgChartCaption  = "📊 Распределение для %s"
	msgAdminOnly     = "Команда доступна только администратору"
	msgStatsTemplate = "📈 Версия: %s\nАптайм: %s\nЗаписей в кэше: %d"
	msgChartAckToast = "Строю диаграмму..."
)
