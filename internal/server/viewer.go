package server

// viewerHTML is the single-page documentation viewer. It fetches
// /openapi.json, renders the operations grouped by tag, and submits
// try-it-out requests through /proxy. The %s placeholder is the API title.
const viewerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
  body { font-family: -apple-system, sans-serif; margin: 0; background: #f6f7f9; color: #1f2430; }
  header { background: #1f2430; color: #fff; padding: 16px 24px; }
  header h1 { margin: 0; font-size: 20px; }
  main { max-width: 960px; margin: 0 auto; padding: 24px; }
  .tag { margin-bottom: 24px; }
  .tag h2 { font-size: 16px; text-transform: capitalize; border-bottom: 1px solid #d8dce3; padding-bottom: 6px; }
  .op { background: #fff; border: 1px solid #d8dce3; border-radius: 6px; margin: 8px 0; padding: 10px 14px; }
  .op .line { display: flex; gap: 12px; align-items: center; cursor: pointer; }
  .verb { font-weight: 700; font-size: 12px; padding: 3px 8px; border-radius: 4px; color: #fff; min-width: 48px; text-align: center; }
  .verb.get { background: #2f80ed; } .verb.post { background: #27ae60; }
  .verb.put { background: #f2994a; } .verb.patch { background: #9b51e0; }
  .verb.delete { background: #eb5757; } .verb.head, .verb.options { background: #828a99; }
  .path { font-family: ui-monospace, monospace; }
  .summary { color: #5a6272; margin-left: auto; font-size: 13px; }
  .detail { display: none; margin-top: 10px; font-size: 13px; }
  .op.open .detail { display: block; }
  pre { background: #f0f2f5; padding: 8px; border-radius: 4px; overflow-x: auto; }
  button { background: #2f80ed; color: #fff; border: 0; border-radius: 4px; padding: 6px 12px; cursor: pointer; }
  input { width: 100%%; box-sizing: border-box; padding: 6px; margin: 4px 0; border: 1px solid #d8dce3; border-radius: 4px; }
</style>
</head>
<body>
<header><h1>%[1]s</h1></header>
<main id="app">Loading specification…</main>
<script>
(async function () {
  const res = await fetch('/openapi.json');
  const spec = await res.json();
  const app = document.getElementById('app');
  const server = (spec.servers && spec.servers[0] && spec.servers[0].url) || '';
  const groups = {};
  for (const [path, item] of Object.entries(spec.paths || {})) {
    for (const [verb, op] of Object.entries(item)) {
      const tag = (op.tags && op.tags[0]) || 'default';
      (groups[tag] = groups[tag] || []).push({ path, verb, op });
    }
  }
  app.innerHTML = '';
  for (const tag of Object.keys(groups).sort()) {
    const section = document.createElement('div');
    section.className = 'tag';
    section.innerHTML = '<h2>' + tag + '</h2>';
    for (const { path, verb, op } of groups[tag]) {
      const el = document.createElement('div');
      el.className = 'op';
      el.innerHTML =
        '<div class="line"><span class="verb ' + verb + '">' + verb.toUpperCase() + '</span>' +
        '<span class="path">' + path + '</span>' +
        '<span class="summary">' + (op.summary || '') + '</span></div>' +
        '<div class="detail"><p>' + (op.description || '') + '</p>' +
        '<input class="url" value="' + server + path + '">' +
        '<button class="try">Send</button><pre class="out"></pre></div>';
      el.querySelector('.line').onclick = () => el.classList.toggle('open');
      el.querySelector('.try').onclick = async () => {
        const out = el.querySelector('.out');
        out.textContent = '…';
        try {
          const r = await fetch('/proxy', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify({ method: verb, url: el.querySelector('.url').value }),
          });
          const data = await r.json();
          out.textContent = 'HTTP ' + data.status + '\n' + data.body;
        } catch (err) {
          out.textContent = String(err);
        }
      };
      section.appendChild(el);
    }
    app.appendChild(section);
  }
})();
</script>
</body>
</html>`
