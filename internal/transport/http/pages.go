package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var landingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>TripPlanner</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: linear-gradient(135deg,#0f9b8e,#2d6cdf); color: #fff; min-height: 100vh; display: flex; flex-direction: column; }
header { padding: 48px 20px 16px; text-align: center; }
main { flex: 1; display: flex; justify-content: center; padding: 0 20px; }
form, #result { background: #fff; color: #333; padding: 24px; border-radius: 8px; width: 100%; max-width: 460px; box-shadow: 0 10px 40px rgba(0,0,0,0.2); }
input, button { width: 100%; padding: 10px; margin: 6px 0; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
button { background: #2d6cdf; color: #fff; border: none; cursor: pointer; }
#result { display: none; margin-top: 16px; }
footer { text-align: center; padding: 20px; font-size: 14px; opacity: 0.8; }
</style>
</head>
<body>
<header>
  <h1>Plan your next trip</h1>
  <p>Tell us your budget and we will suggest a day-by-day itinerary.</p>
</header>
<main>
  <div>
    <form onsubmit="return generate(event)">
      <input type="number" name="budget" placeholder="Total budget (VND)" min="1" required />
      <input type="number" name="days" placeholder="Days" min="1" required />
      <input type="number" name="travelers" placeholder="Travelers" min="1" value="1" required />
      <input type="text" name="preferences" placeholder="Preferences, e.g. beach, culture" />
      <button type="submit">Generate itinerary</button>
    </form>
    <div id="result"></div>
  </div>
</main>
<footer>TripPlanner API &middot; <a href="/swagger/index.html" style="color:#fff">API docs</a></footer>
<script>
async function generate(event) {
  event.preventDefault();
  const form = new FormData(event.target);
  const body = {
    budget: Number(form.get('budget')),
    days: Number(form.get('days')),
    travelers: Number(form.get('travelers')),
    preferences: String(form.get('preferences') || '').split(',').map(s => s.trim()).filter(Boolean)
  };
  const response = await fetch('/api/v1/itineraries/generate', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(body)
  });
  const data = await response.json();
  const box = document.getElementById('result');
  box.style.display = 'block';
  if (!response.ok) {
    box.textContent = data.error || 'Unable to generate itinerary';
    return false;
  }
  const it = data.itinerary;
  box.innerHTML = '<h3></h3><ol></ol><p></p>';
  box.querySelector('h3').textContent = it.title;
  const list = box.querySelector('ol');
  it.items.forEach(item => {
    const li = document.createElement('li');
    li.textContent = 'Day ' + item.day + ': ' + item.destination.name;
    list.appendChild(li);
  });
  box.querySelector('p').textContent = 'Estimated total: ' + it.total_estimated_cost.toLocaleString() + ' ' + it.currency;
  return false;
}
</script>
</body>
</html>`

func RegisterPages(e *echo.Echo, homeURL string) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, landingPageHTML)
	})

	e.GET("/home", func(c echo.Context) error {
		if homeURL != "" {
			return c.Redirect(http.StatusTemporaryRedirect, homeURL)
		}
		return c.Redirect(http.StatusTemporaryRedirect, "/")
	})
}
